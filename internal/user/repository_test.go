package user_test

import (
	"context"
	"testing"

	"kudos_web/internal/kudo"
	"kudos_web/internal/testutil"
	"kudos_web/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newUserDB(t *testing.T) *gorm.DB {
	return testutil.NewSQLiteDB(t, &user.User{}, &user.Profile{}, &kudo.Kudo{})
}

func createUser(t *testing.T, repo user.Repository, email, first, last string) *user.User {
	t.Helper()
	u := &user.User{
		Email:        email,
		PasswordHash: "hash",
		Profile:      user.Profile{FirstName: first, LastName: last},
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo := user.NewGORMRepository(newUserDB(t))
	ctx := context.Background()

	u := createUser(t, repo, "  Ada@Example.COM ", "Ada", "Lovelace")
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, u.ID, u.Profile.UserID)

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "Lovelace", byEmail.Profile.LastName)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	count, err := repo.CountByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_CreateDuplicateEmail(t *testing.T) {
	repo := user.NewGORMRepository(newUserDB(t))
	createUser(t, repo, "ada@example.com", "Ada", "Lovelace")

	err := repo.Create(context.Background(), &user.User{
		Email:        "ADA@example.com",
		PasswordHash: "hash",
		Profile:      user.Profile{FirstName: "Other", LastName: "Ada"},
	})
	assert.ErrorIs(t, err, user.ErrUserExists)
}

func TestRepository_ListOthersOrderedByFirstName(t *testing.T) {
	repo := user.NewGORMRepository(newUserDB(t))
	me := createUser(t, repo, "me@example.com", "Aaron", "Self")
	createUser(t, repo, "zoe@example.com", "Zoe", "Z")
	createUser(t, repo, "bob@example.com", "Bob", "B")
	createUser(t, repo, "mia@example.com", "Mia", "M")

	others, err := repo.ListOthers(context.Background(), me.ID)
	require.NoError(t, err)

	var names []string
	for _, u := range others {
		names = append(names, u.Profile.FirstName)
	}
	assert.Equal(t, []string{"Bob", "Mia", "Zoe"}, names)
}

func TestRepository_UpdateProfileAndPicture(t *testing.T) {
	repo := user.NewGORMRepository(newUserDB(t))
	ctx := context.Background()
	u := createUser(t, repo, "ada@example.com", "Ada", "Lovelace")

	require.NoError(t, repo.UpdateProfile(ctx, u.ID, user.ProfileInput{
		FirstName: " Augusta ", LastName: "King", Department: user.DepartmentEngineering,
	}))
	assert.ErrorIs(t, repo.UpdateProfile(ctx, uuid.New(), user.ProfileInput{FirstName: "x", LastName: "y"}), user.ErrUserNotFound)

	previous, err := repo.SwapProfilePicture(ctx, u.ID, "/uploads/one.png")
	require.NoError(t, err)
	assert.Empty(t, previous)

	previous, err = repo.SwapProfilePicture(ctx, u.ID, "/uploads/two.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/one.png", previous)

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", got.Profile.FirstName)
	assert.Equal(t, "King", got.Profile.LastName)
	assert.Equal(t, "ENGINEERING", got.Profile.DepartmentValue())
	assert.Equal(t, "/uploads/two.png", got.Profile.PictureURL())

	pictures, err := repo.ProfilePictures(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/two.png"}, pictures)
}

func TestRepository_DeleteRemovesKudos(t *testing.T) {
	db := newUserDB(t)
	repo := user.NewGORMRepository(db)
	kudos := kudo.NewGORMRepository(db)
	ctx := context.Background()

	ada := createUser(t, repo, "ada@example.com", "Ada", "Lovelace")
	bob := createUser(t, repo, "bob@example.com", "Bob", "Builder")
	cy := createUser(t, repo, "cy@example.com", "Cy", "Press")

	for _, k := range []*kudo.Kudo{
		{Message: "from ada", Style: kudo.DefaultStyle(), AuthorID: ada.ID, RecipientID: bob.ID},
		{Message: "to ada", Style: kudo.DefaultStyle(), AuthorID: bob.ID, RecipientID: ada.ID},
		{Message: "unrelated", Style: kudo.DefaultStyle(), AuthorID: bob.ID, RecipientID: cy.ID},
	} {
		require.NoError(t, kudos.Create(ctx, k))
	}

	require.NoError(t, repo.Delete(ctx, ada.ID))

	_, err := repo.FindByID(ctx, ada.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	var remaining []kudo.Kudo
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "unrelated", remaining[0].Message)

	var profiles int64
	require.NoError(t, db.Model(&user.Profile{}).Where("user_id = ?", ada.ID).Count(&profiles).Error)
	assert.Zero(t, profiles)

	assert.ErrorIs(t, repo.Delete(ctx, ada.ID), user.ErrUserNotFound)
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc := user.NewService(user.NewGORMRepository(newUserDB(t)), zap.NewNop())
	ctx := context.Background()

	registered, err := svc.Register(ctx, user.RegisterInput{
		Email: "ada@example.com", Password: "secret1", FirstName: " Ada ", LastName: "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", registered.Profile.FirstName)
	assert.NotEqual(t, "secret1", registered.PasswordHash)

	_, err = svc.Register(ctx, user.RegisterInput{
		Email: "ADA@example.com", Password: "secret2", FirstName: "A", LastName: "L",
	})
	assert.ErrorIs(t, err, user.ErrUserExists)

	loggedIn, err := svc.Login(ctx, "Ada@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, user.ErrInvalidLogin)

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, user.ErrInvalidLogin)
}
