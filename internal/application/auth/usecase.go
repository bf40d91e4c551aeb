package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/alianzanet/gestion-api/internal/application/dto"
	"github.com/alianzanet/gestion-api/internal/domain"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
	"github.com/alianzanet/gestion-api/internal/domain/repository"
	"github.com/alianzanet/gestion-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Registrar crea un usuario del panel: hashea password con bcrypt y persiste.
// Devuelve ErrUsernameAlreadyExists si el username ya está tomado.
func (uc *UseCase) Registrar(ctx context.Context, in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	existing, err := uc.usuarioRepo.BuscarPorUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	nombre := in.Nombre
	if nombre == "" {
		nombre = in.Username
	}
	rol := in.Rol
	if rol == "" {
		rol = entity.RolOperador
	}
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Nombre:       nombre,
		Rol:          rol,
		Estado:       "activo",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.usuarioRepo.Crear(ctx, usuario); err != nil {
		return nil, err
	}
	resp := dto.ToUsuarioResponse(usuario)
	return &resp, nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.BuscarPorUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if usuario.Estado != "activo" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: dto.ToUsuarioResponse(usuario),
	}, nil
}
