package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/RonjuVai/Osint-Bot/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrReferralCodeTaken = errors.New("referral code already taken")
)

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = buildPostgresDSNFromEnv()
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{pool: pool}
	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func buildPostgresDSNFromEnv() string {
	host := strings.TrimSpace(os.Getenv("POSTGRES_HOST"))
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("POSTGRES_PORT"))
	if port == "" {
		port = "5432"
	}
	db := strings.TrimSpace(os.Getenv("POSTGRES_DB"))
	if db == "" {
		db = "osint_bot"
	}
	user := strings.TrimSpace(os.Getenv("POSTGRES_USER"))
	if user == "" {
		user = "osint_bot"
	}
	pass := os.Getenv("POSTGRES_PASSWORD")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", urlEscape(user), urlEscape(pass), host, port, db)
}

func urlEscape(s string) string {
	r := strings.NewReplacer(
		"%", "%25",
		":", "%3A",
		"/", "%2F",
		"@", "%40",
		"?", "%3F",
		"#", "%23",
		"[", "%5B",
		"]", "%5D",
	)
	return r.Replace(s)
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDB(*s.pool.Config().ConnConfig)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

// CreateWithTrial inserts the account with its trial grant already
// applied. The ON CONFLICT DO NOTHING makes first contact exactly-once:
// created reports whether this call won the insert. When the new
// account carries a referrer, the referrer's credit and the referral
// event commit in the same transaction as the account row, so no crash
// window can strand a referred account without its paid event. A
// vanished referrer skips the payout without failing the creation.
func (s *PostgresStore) CreateWithTrial(acc types.Account, referralReward int) (created bool, rewarded bool, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
INSERT INTO accounts (user_id, username, first_name, verified, trial_used, premium_until, credits, referrer_id, referral_code)
VALUES ($1, $2, $3, FALSE, TRUE, $4, $5, $6, $7)
ON CONFLICT (user_id) DO NOTHING
`, acc.UserID, strings.TrimSpace(acc.Username), strings.TrimSpace(acc.FirstName), acc.PremiumUntil, acc.Credits, acc.ReferrerID, acc.ReferralCode)
	if err != nil {
		if isUniqueViolation(err, "accounts_referral_code_key") {
			return false, false, ErrReferralCodeTaken
		}
		return false, false, err
	}
	created = tag.RowsAffected() > 0

	if created && acc.ReferrerID != nil && *acc.ReferrerID != acc.UserID && referralReward > 0 {
		tag, err = tx.Exec(ctx, `
UPDATE accounts
SET credits = credits + $2, updated_at = NOW()
WHERE user_id = $1
`, *acc.ReferrerID, referralReward)
		if err != nil {
			return false, false, err
		}
		if tag.RowsAffected() > 0 {
			_, err = tx.Exec(ctx, `
INSERT INTO referral_events (referrer_id, referred_id, reward_claimed)
VALUES ($1, $2, TRUE)
ON CONFLICT (referred_id) DO NOTHING
`, *acc.ReferrerID, acc.UserID)
			if err != nil {
				return false, false, err
			}
			rewarded = true
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, false, err
	}
	return created, rewarded, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

func (s *PostgresStore) GetAccount(userID int64) (*types.Account, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var a types.Account
	err := s.pool.QueryRow(ctx, `
SELECT user_id, username, first_name, joined_at, verified, trial_used, premium_until, credits, referrer_id, referral_code, updated_at
FROM accounts
WHERE user_id = $1
`, userID).Scan(&a.UserID, &a.Username, &a.FirstName, &a.JoinedAt, &a.Verified, &a.TrialUsed, &a.PremiumUntil, &a.Credits, &a.ReferrerID, &a.ReferralCode, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *PostgresStore) TouchProfile(userID int64, username, firstName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.pool.Exec(ctx, `
UPDATE accounts
SET username = $2, first_name = $3, updated_at = NOW()
WHERE user_id = $1
`, userID, strings.TrimSpace(username), strings.TrimSpace(firstName))
	return err
}

func (s *PostgresStore) SetVerified(userID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tag, err := s.pool.Exec(ctx, `
UPDATE accounts
SET verified = TRUE, updated_at = NOW()
WHERE user_id = $1
`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Debit decrements credits only when the balance covers the amount, in
// one conditional statement. ok is false when the balance fell short;
// remaining reports the balance either way.
func (s *PostgresStore) Debit(userID int64, amount int) (bool, int, error) {
	if amount < 0 {
		amount = 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var remaining int
	err := s.pool.QueryRow(ctx, `
UPDATE accounts
SET credits = credits - $2, updated_at = NOW()
WHERE user_id = $1 AND credits >= $2
RETURNING credits
`, userID, amount).Scan(&remaining)
	if err == nil {
		return true, remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, 0, err
	}

	var balance int
	err = s.pool.QueryRow(ctx, `SELECT credits FROM accounts WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, ErrAccountNotFound
		}
		return false, 0, err
	}
	return false, balance, nil
}

func (s *PostgresStore) Refund(userID int64, amount int) error {
	if amount <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tag, err := s.pool.Exec(ctx, `
UPDATE accounts
SET credits = credits + $2, updated_at = NOW()
WHERE user_id = $1
`, userID, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// AdjustCredits applies an operator correction. No lower bound: the
// balance may legitimately go negative here.
func (s *PostgresStore) AdjustCredits(userID int64, delta int) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tag, err := s.pool.Exec(ctx, `
UPDATE accounts
SET credits = credits + $2, updated_at = NOW()
WHERE user_id = $1
`, userID, delta)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) GrantPremium(userID int64, until time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tag, err := s.pool.Exec(ctx, `
UPDATE accounts
SET premium_until = $2, updated_at = NOW()
WHERE user_id = $1
`, userID, until.UTC())
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ExpireDue clears every elapsed premium grant in a single statement and
// returns the affected user ids. Running it again with no time change
// matches no rows.
func (s *PostgresStore) ExpireDue(now time.Time) ([]int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rows, err := s.pool.Query(ctx, `
UPDATE accounts
SET premium_until = NULL, updated_at = NOW()
WHERE premium_until IS NOT NULL AND premium_until < $1
RETURNING user_id
`, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expired []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		expired = append(expired, id)
	}
	return expired, rows.Err()
}

func (s *PostgresStore) ResolveReferralCode(code string) (int64, bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var userID int64
	err := s.pool.QueryRow(ctx, `
SELECT user_id FROM accounts WHERE referral_code = $1
`, code).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return userID, true, nil
}

func (s *PostgresStore) Stats() (*types.Stats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var st types.Stats
	err := s.pool.QueryRow(ctx, `
SELECT
  (SELECT COUNT(*) FROM accounts),
  (SELECT COUNT(*) FROM accounts WHERE premium_until IS NOT NULL AND premium_until > NOW()),
  (SELECT COUNT(*) FROM accounts WHERE verified),
  (SELECT COUNT(*) FROM referral_events)
`).Scan(&st.TotalAccounts, &st.PremiumAccounts, &st.VerifiedAccounts, &st.ReferralEvents)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *PostgresStore) AllUserIDs() ([]int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rows, err := s.pool.Query(ctx, `SELECT user_id FROM accounts ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *PostgresStore) SaveBroadcast(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.pool.Exec(ctx, `
INSERT INTO broadcasts (id, body)
VALUES (1, $1)
ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()
`, text)
	return err
}
