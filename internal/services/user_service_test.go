package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiowedding/internal/models"
)

type fakeNotifier struct {
	vendors []string
}

func (n *fakeNotifier) NotifyVendorRegistered(businessName, email string) {
	n.vendors = append(n.vendors, businessName)
}

func coupleInput() RegisterInput {
	return RegisterInput{
		UserType:        "bride_groom",
		FirstName:       "Anna",
		LastName:        "Kim",
		Email:           "anna@example.com",
		Phone:           "+7 700 000 0000",
		Password:        "StrongPass1",
		ConfirmPassword: "StrongPass1",
		Newsletter:      true,
	}
}

func vendorInput() RegisterInput {
	return RegisterInput{
		UserType:        "vendor",
		FirstName:       "Mira",
		LastName:        "Lee",
		Email:           "mira@example.com",
		Password:        "StrongPass1",
		ConfirmPassword: "StrongPass1",
		BusinessName:    "Petal & Stem",
		BusinessType:    "florist",
		ServiceArea:     "Almaty",
	}
}

func newUserFixture(existing ...*models.User) (UserService, *fakeCredentialRepo, *fakeNotifier) {
	creds := newFakeCredentialRepo(existing...)
	notifier := &fakeNotifier{}
	svc := NewUserService(creds, &fakeEmailService{}, fakeAuthService{}, notifier)
	return svc, creds, notifier
}

func TestRegisterCouple(t *testing.T) {
	svc, creds, notifier := newUserFixture()

	in := coupleInput()
	in.WeddingDate = time.Now().AddDate(0, 6, 0).Format("2006-01-02")
	guests := 120
	in.GuestCount = &guests

	user, err := svc.Register(in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCouple, user.Role)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Equal(t, "hashed:StrongPass1", user.PasswordHash)
	require.NotNil(t, user.WeddingDate)
	require.NotNil(t, user.GuestCount)
	assert.Equal(t, 120, *user.GuestCount)
	assert.Empty(t, notifier.vendors)

	stored, _ := creds.FindByEmailAndRole("anna@example.com", models.RoleCouple)
	assert.NotNil(t, stored)
}

func TestRegisterVendorNotifiesOps(t *testing.T) {
	svc, _, notifier := newUserFixture()

	user, err := svc.Register(vendorInput())
	require.NoError(t, err)
	assert.Equal(t, models.RoleVendor, user.Role)
	assert.Equal(t, "Petal & Stem", user.BusinessName)
	assert.Equal(t, []string{"Petal & Stem"}, notifier.vendors)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, creds, _ := newUserFixture()

	in := coupleInput()
	in.Email = "  Anna@Example.COM "
	user, err := svc.Register(in)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)

	stored, _ := creds.FindByEmailAndRole("anna@example.com", models.RoleCouple)
	assert.NotNil(t, stored)
}

func TestRegisterRejectsAdmin(t *testing.T) {
	svc, _, _ := newUserFixture()

	in := coupleInput()
	in.UserType = "admin"
	_, err := svc.Register(in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in.UserType = "superuser"
	_, err = svc.Register(in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newUserFixture()

	t.Run("weak password", func(t *testing.T) {
		in := coupleInput()
		in.Password = "weakpass"
		in.ConfirmPassword = "weakpass"
		_, err := svc.Register(in)
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("password mismatch", func(t *testing.T) {
		in := coupleInput()
		in.ConfirmPassword = "StrongPass2"
		_, err := svc.Register(in)
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("malformed email", func(t *testing.T) {
		in := coupleInput()
		in.Email = "not-an-email"
		_, err := svc.Register(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("blank name", func(t *testing.T) {
		in := coupleInput()
		in.FirstName = "   "
		_, err := svc.Register(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("wedding date in the past", func(t *testing.T) {
		in := coupleInput()
		in.WeddingDate = "2020-06-15"
		_, err := svc.Register(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unparseable wedding date", func(t *testing.T) {
		in := coupleInput()
		in.WeddingDate = "15/06/2030"
		_, err := svc.Register(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("guest count out of range", func(t *testing.T) {
		for _, n := range []int{0, -5, 1001} {
			in := coupleInput()
			count := n
			in.GuestCount = &count
			_, err := svc.Register(in)
			assert.ErrorIs(t, err, ErrInvalidInput, "guest count %d", n)
		}
	})

	t.Run("vendor without business name", func(t *testing.T) {
		in := vendorInput()
		in.BusinessName = ""
		_, err := svc.Register(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("vendor without business type", func(t *testing.T) {
		in := vendorInput()
		in.BusinessType = "  "
		_, err := svc.Register(in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRegisterEmailTakenAcrossRoles(t *testing.T) {
	svc, _, _ := newUserFixture(
		&models.User{ID: 7, Role: models.RoleVendor, Email: "anna@example.com"},
	)

	// the email belongs to a vendor; a couple may not reuse it
	_, err := svc.Register(coupleInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newUserFixture(
		&models.User{ID: 1, Role: models.RoleCouple, Email: "anna@example.com", PasswordHash: "hashed:StrongPass1"},
	)

	user, err := svc.Authenticate("Anna@example.com ", "StrongPass1", models.RoleCouple)
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	_, err = svc.Authenticate("anna@example.com", "WrongPass1", models.RoleCouple)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Authenticate("anna@example.com", "StrongPass1", models.RoleVendor)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Authenticate("nobody@example.com", "StrongPass1", models.RoleCouple)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
