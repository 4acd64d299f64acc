package auth_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/warehouse-productivity/internal/auth"
)

// Mock repository for testing
type mockAuthRepository struct {
	passwordHashes map[string]string
	userIDs        map[string]int64
	actors         map[int64]*auth.User
	getActorError  error
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		passwordHashes: make(map[string]string),
		userIDs:        make(map[string]int64),
		actors:         make(map[int64]*auth.User),
	}
}

func (m *mockAuthRepository) GetPasswordForUsername(username string) (string, int64, error) {
	hash, ok := m.passwordHashes[username]
	if !ok {
		return "", 0, errors.New("user not found")
	}
	return hash, m.userIDs[username], nil
}

func (m *mockAuthRepository) GetActor(userID int64) (*auth.User, error) {
	if m.getActorError != nil {
		return nil, m.getActorError
	}
	actor, ok := m.actors[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return actor, nil
}

var _ = Describe("AuthService", func() {
	var (
		service  *auth.Service
		mockRepo *mockAuthRepository
		tokenGen *auth.JWTTokenGenerator
	)

	const (
		accessSecret  = "test-access-secret-0123456789abcdef"
		refreshSecret = "test-refresh-secret-0123456789abcde"
	)

	BeforeEach(func() {
		mockRepo = newMockAuthRepository()
		hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
		Expect(err).ToNot(HaveOccurred())
		mockRepo.passwordHashes["lead_anna"] = string(hash)
		mockRepo.userIDs["lead_anna"] = 3
		mockRepo.actors[3] = &auth.User{ID: 3, Username: "lead_anna", Role: auth.RoleLead, SectionIDs: []int64{10}}

		tokenGen = auth.NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, 7*24*time.Hour)
		service = auth.NewService(mockRepo, tokenGen)
	})

	Describe("Authenticate", func() {
		It("returns a token pair for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "lead_anna", Password: "correct-password"})

			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.UserID).To(Equal("3"))
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "lead_anna", Password: "wrong"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown username", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "ghost", Password: "whatever"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects missing fields before touching the repository", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "lead_anna"})
			Expect(err).To(BeAssignableToTypeOf(auth.ValidationError{}))
		})
	})

	Describe("RefreshTokens", func() {
		It("issues a fresh pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "lead_anna", Password: "correct-password"})
			Expect(err).ToNot(HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(refreshed.AccessToken).ToNot(BeEmpty())
			Expect(refreshed.RefreshToken).ToNot(BeEmpty())
		})

		It("rejects garbage tokens", func() {
			_, err := service.RefreshTokens("not-a-jwt")
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})

	Describe("token validation", func() {
		It("rejects a token signed with an unrelated secret", func() {
			foreign := auth.NewJWTTokenGenerator("another-secret-entirely-0123456789", "and-another-one-entirely-012345678", time.Minute, time.Hour)
			token, err := foreign.GenerateAccessToken("3")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})

		It("rejects an expired token", func() {
			shortLived := auth.NewJWTTokenGenerator(accessSecret, refreshSecret, time.Nanosecond, time.Nanosecond)
			token, err := shortLived.GenerateAccessToken("3")
			Expect(err).ToNot(HaveOccurred())

			time.Sleep(10 * time.Millisecond)

			_, err = service.ValidateAccessToken(token)
			Expect(err).To(Equal(auth.ErrTokenExpired))
		})
	})

	Describe("GetActor", func() {
		It("loads the actor with memberships", func() {
			actor, err := service.GetActor(3)
			Expect(err).ToNot(HaveOccurred())
			Expect(actor.Username).To(Equal("lead_anna"))
			Expect(actor.SectionIDs).To(Equal([]int64{10}))
		})
	})
})
