package types

type AwaitState string

const (
	AwaitIdle    AwaitState = "idle"
	AwaitAadhaar AwaitState = "awaiting_aadhaar"
	AwaitVehicle AwaitState = "awaiting_vehicle"
	AwaitPhone   AwaitState = "awaiting_phone"
)

type LookupKind string

const (
	LookupAadhaar LookupKind = "aadhaar"
	LookupVehicle LookupKind = "vehicle"
	LookupPhone   LookupKind = "phone"
)
