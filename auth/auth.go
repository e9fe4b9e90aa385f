package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"vastra/apperr"
	"vastra/db"
	"vastra/globals"
	"vastra/middleware"
	"vastra/models"
	"vastra/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
	otpTTL          = 10 * time.Minute
	resetTokenTTL   = 15 * time.Minute
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Mobile    string `json:"mobile"`
}

// Register creates an account. Email, mobile and password formats are
// validated before anything touches the database.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.Mobile == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.ValidEmail(req.Email) {
		apperr.Respond(w, apperr.BadRequest("Invalid email address"))
		return
	}
	if !utils.ValidMobile(req.Mobile) {
		apperr.Respond(w, apperr.BadRequest("Invalid mobile number"))
		return
	}
	if !utils.ValidPassword(req.Password) {
		apperr.Respond(w, apperr.BadRequest("Password must be at least 8 characters with uppercase, lowercase, digit and special character"))
		return
	}

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if count > 0 {
		apperr.Respond(w, apperr.AlreadyExists("User already exists"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	user := models.User{
		UserID:    utils.GenerateID("u"),
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Mobile:    req.Mobile,
		Role:      []string{"user"},
		CreatedAt: time.Now(),
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	user.Password = ""
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"status":  "success",
		"message": "User registered successfully",
		"data":    utils.M{"user": user},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a JWT access token plus an opaque
// refresh token. Only the refresh token's hash is stored.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.Unauthorized("Invalid email or password"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		apperr.Respond(w, apperr.Unauthorized("Invalid email or password"))
		return
	}

	accessToken, err := issueAccessToken(&user)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	refreshToken, err := randomHex(32)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	now := time.Now()
	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{
			"refresh_token":  hashToken(refreshToken),
			"refresh_expiry": now.Add(refreshTokenTTL),
			"last_login":     now,
		}},
	); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status": "success",
		"data": utils.M{
			"token":         accessToken,
			"refresh_token": refreshToken,
			"userid":        user.UserID,
			"role":          user.Role,
		},
	})
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token rotates on every use.
func Refresh(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req struct {
		UserID       string `json:"userid"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.RefreshToken == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": req.UserID}).Decode(&user)
	if err != nil {
		apperr.Respond(w, apperr.InvalidToken())
		return
	}
	if user.RefreshToken == "" ||
		user.RefreshToken != hashToken(req.RefreshToken) ||
		time.Now().After(user.RefreshExpiry) {
		apperr.Respond(w, apperr.InvalidToken())
		return
	}

	accessToken, err := issueAccessToken(&user)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	nextRefresh, err := randomHex(32)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{
			"refresh_token":  hashToken(nextRefresh),
			"refresh_expiry": time.Now().Add(refreshTokenTTL),
		}},
	); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status": "success",
		"data": utils.M{
			"token":         accessToken,
			"refresh_token": nextRefresh,
		},
	})
}

// Logout drops the stored refresh token so it can no longer mint access
// tokens. The access token itself simply ages out.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.Unauthorized(""))
		return
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$unset": bson.M{"refresh_token": "", "refresh_expiry": ""}},
	); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Logged out successfully",
	})
}

// GetProfile returns the logged-in user's account without the password hash.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.Unauthorized(""))
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apperr.Respond(w, apperr.NotFound("User not found"))
		return
	}
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "data": utils.M{"user": user}})
}

func issueAccessToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		Email:  user.Email,
		UserID: user.UserID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
