package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/testutil"
)

func seedUser(t *testing.T, db *gorm.DB, u models.User) *models.User {
	t.Helper()
	if u.Password == "" {
		u.Password = "hash"
	}
	if u.Role == "" {
		u.Role = models.RoleStudent
	}
	u.IsActive = true
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func dob(t *testing.T, y int, m time.Month, d int) *datatypes.Date {
	t.Helper()
	v := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &v
}

func TestUserLastAccountID(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewUserPostgreSQL(db)

	last, err := repo.LastAccountID(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, last)

	seedUser(t, db, models.User{UserID: "APS998", FirstName: "A", LastName: "A", Email: "a@x.com"})
	time.Sleep(2 * time.Millisecond)
	seedUser(t, db, models.User{UserID: "APS999", FirstName: "B", LastName: "B", Email: "b@x.com"})
	seedUser(t, db, models.User{UserID: "LEGACY7", FirstName: "C", LastName: "C", Email: "c@x.com"})

	last, err = repo.LastAccountID(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "APS999", last)
}

func TestUserEmailTakenIgnoresDependents(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewUserPostgreSQL(db)

	parent := seedUser(t, db, models.User{UserID: "APS001", FirstName: "P", LastName: "Lee", Email: "family@x.com", Role: models.RoleParent})
	seedUser(t, db, models.User{UserID: "APS002", FirstName: "K", LastName: "Lee", Email: "kid@x.com", GuardianID: &parent.ID})

	taken, err := repo.EmailTaken(ctx, nil, "FAMILY@x.com", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.EmailTaken(ctx, nil, "family@x.com", parent.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.EmailTaken(ctx, nil, "kid@x.com", "")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserGetByEmailPrefersIndependent(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewUserPostgreSQL(db)

	parent := seedUser(t, db, models.User{UserID: "APS001", FirstName: "P", LastName: "Lee", Email: "family@x.com", Role: models.RoleParent})
	seedUser(t, db, models.User{UserID: "APS002", FirstName: "K", LastName: "Lee", Email: "family@x.com", GuardianID: &parent.ID})

	got, err := repo.GetByEmail(ctx, nil, "Family@X.com")
	require.NoError(t, err)
	assert.Equal(t, parent.ID, got.ID)

	_, err = repo.GetByEmail(ctx, nil, "nobody@x.com")
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestUserDependentExists(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewUserPostgreSQL(db)

	parent := seedUser(t, db, models.User{UserID: "APS001", FirstName: "P", LastName: "Lee", Email: "family@x.com", Role: models.RoleParent})
	kid := seedUser(t, db, models.User{UserID: "APS002", FirstName: "Kim", LastName: "Lee", Email: "family@x.com", GuardianID: &parent.ID, DOB: dob(t, 2015, 1, 1)})
	birth := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)

	exists, err := repo.DependentExists(ctx, nil, parent.ID, "Kim", "Lee", birth, "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.DependentExists(ctx, nil, parent.ID, "Kim", "Lee", birth, kid.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.DependentExists(ctx, nil, parent.ID, "Kim", "Lee", birth.AddDate(0, 0, 1), "")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserDeactivateDependents(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewUserPostgreSQL(db)

	parent := seedUser(t, db, models.User{UserID: "APS001", FirstName: "P", LastName: "Lee", Email: "family@x.com", Role: models.RoleParent})
	seedUser(t, db, models.User{UserID: "APS002", FirstName: "A", LastName: "Lee", Email: "family@x.com", GuardianID: &parent.ID})
	seedUser(t, db, models.User{UserID: "APS003", FirstName: "B", LastName: "Lee", Email: "family@x.com", GuardianID: &parent.ID})

	n, err := repo.DeactivateDependents(ctx, nil, parent.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	kids, err := repo.ListDependents(ctx, nil, parent.ID)
	require.NoError(t, err)
	require.Len(t, kids, 2)
	for _, k := range kids {
		assert.False(t, k.IsActive)
	}
}

func TestUserListFilters(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewUserPostgreSQL(db)

	seedUser(t, db, models.User{UserID: "APS001", FirstName: "Sam", LastName: "Lee", Email: "sam@x.com"})
	seedUser(t, db, models.User{UserID: "APS002", FirstName: "Ana", LastName: "Park", Email: "ana@x.com", Role: models.RoleStaff})
	seedUser(t, db, models.User{UserID: "APS003", FirstName: "Joe", LastName: "Sam_ford", Email: "joe@x.com"})

	users, total, err := repo.List(ctx, nil, repositories.UserFilters{Search: "sam"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)

	users, _, err = repo.List(ctx, nil, repositories.UserFilters{Search: "m_f"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "APS003", users[0].UserID)

	staff := models.RoleStaff
	users, total, err = repo.List(ctx, nil, repositories.UserFilters{Role: &staff})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Ana", users[0].FirstName)

	users, total, err = repo.List(ctx, nil, repositories.UserFilters{SortBy: "user_id", SortOrder: "asc", Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, users, 2)
	assert.Equal(t, "APS001", users[0].UserID)
}

func TestUserDuplicateAccountID(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := NewUserPostgreSQL(db)

	seedUser(t, db, models.User{UserID: "APS001", FirstName: "A", LastName: "A", Email: "a@x.com"})
	err := repo.Create(ctx, nil, &models.User{UserID: "APS001", FirstName: "B", LastName: "B", Email: "b@x.com", Password: "h", Role: models.RoleStudent})
	assert.True(t, repositories.IsDuplicateKeyError(err))
}
