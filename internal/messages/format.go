package messages

import (
	"fmt"
	"strings"

	"github.com/RonjuVai/Osint-Bot/internal/lookup"
)

const disclaimer = "\n⚠️ <i>This information is for authorized use only</i>"

// FormatAadhaar renders whichever variant the provider returned.
func FormatAadhaar(result *lookup.AadhaarResult) string {
	if result.Ration != nil {
		return formatRationCard(result.Number, result.Ration)
	}
	return formatLegacyAadhaar(result.Number, result.Legacy)
}

func formatRationCard(number string, r *lookup.RationCardRecord) string {
	var b strings.Builder
	b.WriteString("📄 <b>Ration Card Information Found</b>\n\n")
	fmt.Fprintf(&b, "🔢 <b>Aadhaar Number:</b> <code>%s</code>\n", Escape(number))
	fmt.Fprintf(&b, "🏠 <b>Address:</b> %s\n", orNA(r.Address))
	fmt.Fprintf(&b, "📍 <b>District:</b> %s\n", orNA(r.District))
	fmt.Fprintf(&b, "🏛️ <b>State:</b> %s\n", orNA(r.State))
	fmt.Fprintf(&b, "📋 <b>Scheme:</b> %s\n", orNA(r.Scheme))
	fmt.Fprintf(&b, "🆔 <b>RC ID:</b> %s\n", orNA(r.RCID))
	fmt.Fprintf(&b, "\n👥 <b>Family Members (%d):</b>\n", len(r.Members))
	for _, m := range r.Members {
		fmt.Fprintf(&b, "• %s (%s)\n", Escape(m.Name), Escape(m.Relationship))
	}
	b.WriteString(disclaimer)
	return b.String()
}

func formatLegacyAadhaar(number string, r *lookup.LegacyAadhaarRecord) string {
	var b strings.Builder
	b.WriteString("📄 <b>Aadhaar Information Found</b>\n\n")
	fmt.Fprintf(&b, "🔢 <b>Aadhaar Number:</b> <code>%s</code>\n", Escape(number))
	fmt.Fprintf(&b, "📛 <b>Name:</b> %s\n", orNA(r.Name))
	fmt.Fprintf(&b, "👤 <b>Gender:</b> %s\n", orNA(r.Gender))
	fmt.Fprintf(&b, "📅 <b>Date of Birth:</b> %s\n", orNA(r.DOB))
	fmt.Fprintf(&b, "📞 <b>Phone:</b> %s\n", orNA(r.Phone))
	fmt.Fprintf(&b, "📧 <b>Email:</b> %s\n", orNA(r.Email))
	fmt.Fprintf(&b, "🏠 <b>Address:</b> %s\n", orNA(r.Address))
	b.WriteString(disclaimer)
	return b.String()
}

func FormatVehicle(r *lookup.VehicleRecord) string {
	var b strings.Builder
	b.WriteString("🚗 <b>Vehicle Information Found</b>\n\n")
	fmt.Fprintf(&b, "🔢 <b>Vehicle Number:</b> <code>%s</code>\n", orNA(r.VehicleNo))
	fmt.Fprintf(&b, "👤 <b>Owner:</b> %s\n", orNA(r.Owner))
	fmt.Fprintf(&b, "👨‍👦 <b>Father's Name:</b> %s\n", orNA(r.FatherName))
	fmt.Fprintf(&b, "🏷️ <b>Owner Type:</b> %s\n", orNA(r.OwnerSerialNo))
	fmt.Fprintf(&b, "🚘 <b>Model:</b> %s\n", orNA(r.Model))
	fmt.Fprintf(&b, "🏭 <b>Maker Model:</b> %s\n", orNA(r.MakerModel))
	fmt.Fprintf(&b, "📊 <b>Vehicle Class:</b> %s\n", orNA(r.VehicleClass))
	fmt.Fprintf(&b, "⛽ <b>Fuel Type:</b> %s\n", orNA(r.FuelType))
	fmt.Fprintf(&b, "🌿 <b>Fuel Norms:</b> %s\n", orNA(r.FuelNorms))
	b.WriteString("\n🏢 <b>Insurance:</b>\n")
	fmt.Fprintf(&b, "   • Company: %s\n", orNA(r.InsuranceCompany))
	fmt.Fprintf(&b, "   • Policy No: %s\n", orNA(r.InsuranceNo))
	fmt.Fprintf(&b, "   • Expiry: %s\n", orNA(r.InsuranceUpto))
	fmt.Fprintf(&b, "   • Status: %s\n", orNA(r.InsuranceStatus))
	b.WriteString("\n📅 <b>Other Details:</b>\n")
	fmt.Fprintf(&b, "   • Fitness Upto: %s\n", orNA(r.FitnessUpto))
	fmt.Fprintf(&b, "   • Tax Upto: %s\n", orNA(r.TaxUpto))
	fmt.Fprintf(&b, "   • PUC Upto: %s\n", orNA(r.PUCUpto))
	fmt.Fprintf(&b, "   • PUC Status: %s\n", orNA(r.PUCStatus))
	fmt.Fprintf(&b, "   • Vehicle Age: %s\n", orNA(r.VehicleAge))
	fmt.Fprintf(&b, "\n🏠 <b>Address:</b> %s\n", orNA(r.Address))
	fmt.Fprintf(&b, "📞 <b>Phone:</b> %s\n", orNA(r.Phone))
	fmt.Fprintf(&b, "💳 <b>Financier:</b> %s\n", orNA(r.FinancierName))
	b.WriteString(disclaimer)
	return b.String()
}

func FormatPhone(result *lookup.PhoneResult) string {
	var b strings.Builder
	b.WriteString("📱 <b>Pakistan Phone Information Found</b>\n\n")
	fmt.Fprintf(&b, "🔢 <b>Phone Number:</b> <code>%s</code>\n", Escape(result.Phone))
	fmt.Fprintf(&b, "📊 <b>Total Records Found:</b> %d\n\n", len(result.Records))
	b.WriteString("📋 <b>Records:</b>\n")
	for i, record := range result.Records {
		fmt.Fprintf(&b, "\n📞 <b>Record %d:</b>\n", i+1)
		fmt.Fprintf(&b, "   • <b>Mobile:</b> %s\n", orNA(record.Mobile))
		fmt.Fprintf(&b, "   • <b>Name:</b> %s\n", orNA(record.Name))
		fmt.Fprintf(&b, "   • <b>CNIC:</b> %s\n", orNA(record.CNIC))
		fmt.Fprintf(&b, "   • <b>Address:</b> %s\n", orNA(record.Address))
		fmt.Fprintf(&b, "   • <b>Country:</b> %s\n", orNA(record.Country))
	}
	b.WriteString(disclaimer)
	return b.String()
}
