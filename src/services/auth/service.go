// Package auth authenticates dashboard admins.
package auth

import (
	"context"
	"strings"
	"time"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/utils"

	"github.com/google/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const opTimeout = 5 * time.Second

type Service struct {
	col *mongo.Collection
}

func NewService(col *mongo.Collection) *Service {
	return &Service{col: col}
}

// Login checks the credentials and issues a JWT.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return "", nil, errs.ErrBadCredentials
	}
	if err != nil {
		return "", nil, errs.Store(err, "find user")
	}

	// ตรวจสอบ password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errs.ErrBadCredentials
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	user.Password = ""
	logger.Infof("[auth] ✅ %s logged in", user.Email)
	return token, &user, nil
}

// Logout revokes token for the rest of its lifetime.
func (s *Service) Logout(token string, claims *utils.JWTClaims) error {
	return utils.BlacklistToken(token, utils.TokenTTL(claims))
}

// SeedAdmin creates the first admin account when it does not exist yet.
func (s *Service) SeedAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		logger.Warning("⚠️ ADMIN_EMAIL/ADMIN_PASSWORD not set, admin seeding skipped")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return errs.Store(err, "check admin")
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.col.InsertOne(ctx, models.User{
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleAdmin,
		Name:      "Admin",
		CreatedAt: time.Now(),
	})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return errs.Store(err, "seed admin")
	}
	logger.Infof("✅ Admin %s seeded", email)
	return nil
}
