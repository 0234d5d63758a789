package voucher

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/orchid/internal/database"
	"github.com/example/orchid/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	user := models.User{FullName: "Phạm Văn D", Phone: "0987654321"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedVoucher(t *testing.T, db *gorm.DB, name string, start, end time.Time, rules ...models.VoucherRule) models.Voucher {
	t.Helper()

	v := models.Voucher{
		VoucherName: name,
		VoucherType: "fixed",
		Value:       50_000,
		Description: "Giảm 50k",
		StartDate:   start,
		EndDate:     end,
	}
	require.NoError(t, db.Create(&v).Error)

	for i := range rules {
		rules[i].VoucherID = v.ID
		require.NoError(t, db.Create(&rules[i]).Error)
	}
	return v
}

func TestValidateUnknownVoucher(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	e := NewEvaluator(db)

	res, err := e.Validate("NOPE", user.ID, 100_000)
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Equal(t, CodeInvalid, res.Ecode)
}

func TestValidateExpiredVoucher(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Now()
	seedVoucher(t, db, "OLD50", now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	e := NewEvaluator(db)

	res, err := e.Validate("OLD50", user.ID, 100_000)
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Equal(t, CodeExpired, res.Ecode)
}

func TestValidateNotYetStartedVoucher(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Now()
	seedVoucher(t, db, "SOON50", now.Add(24*time.Hour), now.Add(48*time.Hour))
	e := NewEvaluator(db)

	res, err := e.Validate("SOON50", user.ID, 100_000)
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Equal(t, CodeExpired, res.Ecode)
}

func TestValidateMinPriceRule(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Now()
	seedVoucher(t, db, "BIG50", now.Add(-time.Hour), now.Add(time.Hour),
		models.VoucherRule{RuleType: models.RuleMinPrice, RuleValue: 500_000, Priority: 1},
	)
	e := NewEvaluator(db)

	res, err := e.Validate("BIG50", user.ID, 200_000)
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Equal(t, CodeMinPrice, res.Ecode)
	assert.Equal(t, int64(500_000), res.MinPrice)

	res, err = e.Validate("BIG50", user.ID, 600_000)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	require.NotNil(t, res.Voucher)
	assert.Equal(t, "BIG50", res.Voucher.VoucherName)
}

func TestValidateFirstOrderRule(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Now()
	seedVoucher(t, db, "WELCOME", now.Add(-time.Hour), now.Add(time.Hour),
		models.VoucherRule{RuleType: models.RuleFirstOrder, Priority: 1},
	)
	e := NewEvaluator(db)

	res, err := e.Validate("WELCOME", user.ID, 100_000)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	require.NoError(t, db.Create(&models.Order{UserID: user.ID, TotalPrice: 100_000}).Error)

	res, err = e.Validate("WELCOME", user.ID, 100_000)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, CodeFirstOrder, res.Ecode)
	assert.Equal(t, int64(1), res.OrderCount)
}

func TestValidateUnknownRuleFailsClosed(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Now()
	seedVoucher(t, db, "WEIRD", now.Add(-time.Hour), now.Add(time.Hour),
		models.VoucherRule{RuleType: "LOYALTY_TIER", RuleValue: 3, Priority: 1},
	)
	e := NewEvaluator(db)

	res, err := e.Validate("WEIRD", user.ID, 100_000)
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Equal(t, CodeInvalid, res.Ecode)
}

func TestValidateShortCircuitsOnFirstFailingRule(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Now()
	// MIN_PRICE fails first; FIRST_ORDER would also fail but must not be
	// the reported code.
	seedVoucher(t, db, "STACKED", now.Add(-time.Hour), now.Add(time.Hour),
		models.VoucherRule{RuleType: models.RuleMinPrice, RuleValue: 1_000_000, Priority: 1},
		models.VoucherRule{RuleType: models.RuleFirstOrder, Priority: 2},
	)
	require.NoError(t, db.Create(&models.Order{UserID: user.ID}).Error)
	e := NewEvaluator(db)

	res, err := e.Validate("STACKED", user.ID, 100_000)
	require.NoError(t, err)

	assert.False(t, res.Valid)
	assert.Equal(t, CodeMinPrice, res.Ecode)
}

func TestValidateWindowBoundaryUsesInjectedClock(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	seedVoucher(t, db, "JAN", start, end)

	e := NewEvaluator(db)
	e.now = func() time.Time { return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC) }

	res, err := e.Validate("JAN", user.ID, 100_000)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	e.now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }
	res, err = e.Validate("JAN", user.ID, 100_000)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, CodeExpired, res.Ecode)
}

func TestValidateVoucherIDTypes(t *testing.T) {
	// Rules reference their voucher by uuid; a rule row with a stray
	// voucher id must not leak into another voucher's evaluation.
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Now()
	seedVoucher(t, db, "CLEAN", now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, db.Create(&models.VoucherRule{
		VoucherID: uuid.New(),
		RuleType:  models.RuleMinPrice,
		RuleValue: 9_999_999,
	}).Error)

	e := NewEvaluator(db)
	res, err := e.Validate("CLEAN", user.ID, 1)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}
