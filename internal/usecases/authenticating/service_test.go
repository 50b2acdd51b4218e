package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/salesvision-api/infrastructure/repository"
	"github.com/vfg2006/salesvision-api/infrastructure/repository/mocks"
	"github.com/vfg2006/salesvision-api/internal/config"
	"github.com/vfg2006/salesvision-api/internal/domain"
	errorcodes "github.com/vfg2006/salesvision-api/pkg/apiErrors"
)

const (
	testUserID   = "7f9c2f64-3c1e-4d43-9a53-2d1b0f3c8a11"
	testPassword = "Senha@Forte1"
)

func newTestService(ctrl *gomock.Controller) (*Service, *mocks.MockUserRepository) {
	userRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(userRepo, config.Auth{SecretKey: "test-secret", TokenTTL: time.Hour})
	return service, userRepo
}

func storedUser(t *testing.T) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:           testUserID,
		Email:        "ana@example.com",
		Role:         domain.RoleManager,
		PasswordHash: string(hash),
	}
}

func assertAuthCode(t *testing.T, err error, sentinel error, code string) {
	t.Helper()

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, code, authErr.Code)
}

func TestService_SignUp(t *testing.T) {
	fullName := "  Ana Souza "

	tests := []struct {
		name     string
		req      domain.SignUpRequest
		setup    func(userRepo *mocks.MockUserRepository)
		validate func(t *testing.T, user *domain.User, err error)
	}{
		{
			name: "Cria usuário com perfil analyst e email normalizado",
			req:  domain.SignUpRequest{Email: " Ana@Example.com ", Password: testPassword, FullName: &fullName},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(nil, nil)
				userRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, user *domain.User) (*domain.User, error) {
						assert.Equal(t, "ana@example.com", user.Email)
						assert.Equal(t, domain.RoleAnalyst, user.Role)
						require.NotNil(t, user.FullName)
						assert.Equal(t, "Ana Souza", *user.FullName)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(testPassword)))

						user.ID = testUserID
						return user, nil
					})
			},
			validate: func(t *testing.T, user *domain.User, err error) {
				require.NoError(t, err)
				assert.Equal(t, testUserID, user.ID)
				assert.Empty(t, user.PasswordHash)
			},
		},
		{
			name:  "Email ausente",
			req:   domain.SignUpRequest{Password: testPassword},
			setup: func(userRepo *mocks.MockUserRepository) {},
			validate: func(t *testing.T, user *domain.User, err error) {
				assertAuthCode(t, err, ErrMissingRequiredData, errorcodes.ErrMissingRequiredData)
				assert.Nil(t, user)
			},
		},
		{
			name:  "Email inválido",
			req:   domain.SignUpRequest{Email: "ana-sem-arroba", Password: testPassword},
			setup: func(userRepo *mocks.MockUserRepository) {},
			validate: func(t *testing.T, user *domain.User, err error) {
				assertAuthCode(t, err, ErrInvalidFormat, errorcodes.ErrInvalidFormat)
			},
		},
		{
			name:  "Senha fraca",
			req:   domain.SignUpRequest{Email: "ana@example.com", Password: "123456"},
			setup: func(userRepo *mocks.MockUserRepository) {},
			validate: func(t *testing.T, user *domain.User, err error) {
				assertAuthCode(t, err, ErrWeakPassword, errorcodes.ErrInvalidRequest)
			},
		},
		{
			name: "Email já cadastrado",
			req:  domain.SignUpRequest{Email: "ana@example.com", Password: testPassword},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(&domain.User{ID: testUserID}, nil)
			},
			validate: func(t *testing.T, user *domain.User, err error) {
				assertAuthCode(t, err, ErrUserAlreadyExists, errorcodes.ErrUserAlreadyExists)
			},
		},
		{
			name: "Violação de unicidade no insert vira usuário já existente",
			req:  domain.SignUpRequest{Email: "ana@example.com", Password: testPassword},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(nil, nil)
				userRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, repository.ErrUserAlreadyExists)
			},
			validate: func(t *testing.T, user *domain.User, err error) {
				assertAuthCode(t, err, ErrUserAlreadyExists, errorcodes.ErrUserAlreadyExists)
			},
		},
		{
			name: "Erro de banco na consulta",
			req:  domain.SignUpRequest{Email: "ana@example.com", Password: testPassword},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(nil, errors.New("connection refused"))
			},
			validate: func(t *testing.T, user *domain.User, err error) {
				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, errorcodes.ErrDatabaseOperation, authErr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service, userRepo := newTestService(ctrl)
			tt.setup(userRepo)

			user, err := service.SignUp(context.Background(), tt.req)

			tt.validate(t, user, err)
		})
	}
}

func TestService_LoginUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(t *testing.T, userRepo *mocks.MockUserRepository)
		validate func(t *testing.T, service *Service, token string, err error)
	}{
		{
			name:     "Token emitido valida para o mesmo usuário e perfil",
			email:    "ANA@example.com",
			password: testPassword,
			setup: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(storedUser(t), nil)
			},
			validate: func(t *testing.T, service *Service, token string, err error) {
				require.NoError(t, err)
				require.NotEmpty(t, token)

				claims, err := service.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, testUserID, claims.UserID)
				assert.Equal(t, testUserID, claims.Subject)
				assert.Equal(t, domain.RoleManager, claims.UserRole)
				assert.Equal(t, "ana@example.com", claims.UserEmail)
			},
		},
		{
			name:     "Senha incorreta",
			email:    "ana@example.com",
			password: "Outra@Senha1",
			setup: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ana@example.com").Return(storedUser(t), nil)
			},
			validate: func(t *testing.T, service *Service, token string, err error) {
				assertAuthCode(t, err, ErrInvalidCredentials, errorcodes.ErrInvalidCredentials)
				assert.Empty(t, token)
				assert.True(t, IsCredentialsError(err))
			},
		},
		{
			name:     "Usuário inexistente",
			email:    "ninguem@example.com",
			password: testPassword,
			setup: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ninguem@example.com").Return(nil, nil)
			},
			validate: func(t *testing.T, service *Service, token string, err error) {
				assertAuthCode(t, err, ErrUserNotFound, errorcodes.ErrUserNotFound)
			},
		},
		{
			name:     "Senha ausente",
			email:    "ana@example.com",
			password: "",
			setup:    func(t *testing.T, userRepo *mocks.MockUserRepository) {},
			validate: func(t *testing.T, service *Service, token string, err error) {
				assertAuthCode(t, err, ErrMissingRequiredData, errorcodes.ErrMissingRequiredData)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service, userRepo := newTestService(ctrl)
			tt.setup(t, userRepo)

			token, err := service.LoginUser(context.Background(), tt.email, tt.password)

			tt.validate(t, service, token, err)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, _ := newTestService(ctrl)

	issuedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issuedAt }
	token, err := service.generateJWT(&domain.User{ID: testUserID, Role: domain.RoleViewer})
	require.NoError(t, err)

	t.Run("Token dentro da validade", func(t *testing.T) {
		service.now = func() time.Time { return issuedAt.Add(30 * time.Minute) }
		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleViewer, claims.UserRole)
	})

	t.Run("Token expirado", func(t *testing.T) {
		service.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
		_, err := service.ValidateToken(token)
		assertAuthCode(t, err, ErrExpiredToken, errorcodes.ErrExpiredToken)
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("Assinatura com outra chave", func(t *testing.T) {
		other := NewService(nil, config.Auth{SecretKey: "outra-chave"})
		other.now = func() time.Time { return issuedAt.Add(time.Minute) }
		_, err := other.ValidateToken(token)
		assertAuthCode(t, err, ErrInvalidToken, errorcodes.ErrInvalidToken)
	})

	t.Run("Token malformado", func(t *testing.T) {
		_, err := service.ValidateToken("nao.e.jwt")
		assertAuthCode(t, err, ErrInvalidToken, errorcodes.ErrInvalidToken)
	})
}

func TestService_GetUserProfile(t *testing.T) {
	t.Run("Perfil sem hash de senha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, userRepo := newTestService(ctrl)
		userRepo.EXPECT().GetUserByID(gomock.Any(), testUserID).Return(storedUser(t), nil)

		user, err := service.GetUserProfile(context.Background(), testUserID)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("Identificador que não é uuid não consulta o banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, _ := newTestService(ctrl)

		_, err := service.GetUserProfile(context.Background(), "42")
		assertAuthCode(t, err, ErrInvalidToken, errorcodes.ErrInvalidToken)
	})

	t.Run("Usuário removido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, userRepo := newTestService(ctrl)
		userRepo.EXPECT().GetUserByID(gomock.Any(), testUserID).Return(nil, nil)

		_, err := service.GetUserProfile(context.Background(), testUserID)
		assertAuthCode(t, err, ErrUserNotFound, errorcodes.ErrUserNotFound)
	})
}

func TestGenerateStrongPassword(t *testing.T) {
	service := &Service{}

	for _, length := range []int{4, 8, 16} {
		password, err := GenerateStrongPassword(length)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(password), 8)
		assert.NoError(t, service.ValidatePasswordStrength(password))
	}
}

func TestService_CreateUser(t *testing.T) {
	t.Run("Administrador criado com perfil informado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, userRepo := newTestService(ctrl)

		userRepo.EXPECT().GetUserByEmail(gomock.Any(), "admin@example.com").Return(nil, nil)
		userRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.Equal(t, domain.RoleAdmin, user.Role)
				created := *user
				created.ID = testUserID
				return &created, nil
			})

		user, err := service.CreateUser(context.Background(), domain.SignUpRequest{Email: "Admin@Example.com", Password: testPassword}, domain.RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("Perfil desconhecido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, _ := newTestService(ctrl)

		_, err := service.CreateUser(context.Background(), domain.SignUpRequest{Email: "a@example.com", Password: testPassword}, domain.UserRole("owner"))

		assertAuthCode(t, err, ErrInvalidRole, errorcodes.ErrInvalidFormat)
	})
}
