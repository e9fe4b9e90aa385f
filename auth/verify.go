package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"vastra/apperr"
	"vastra/db"
	"vastra/mailer"
	"vastra/models"
	"vastra/rdx"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// SendOTP emails a 6-digit verification code to the logged-in user. The code
// lives in redis for ten minutes.
func SendOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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
	if user.EmailVerified {
		apperr.Respond(w, apperr.BadRequest("Email is already verified"))
		return
	}

	otp := utils.GenerateRandomDigitString(6)
	if err := rdx.SetWithExpiry("otp:"+userID, otp, otpTTL); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	mailer.SendAsync(user.Email, "Verify your email", mailer.VerificationBody(user.FirstName, otp))

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "OTP sent successfully",
	})
}

// VerifyEmail checks the submitted OTP and marks the account verified. The
// code is single use.
func VerifyEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		apperr.Respond(w, apperr.Unauthorized(""))
		return
	}

	var req struct {
		OTP string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.OTP == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	stored, err := rdx.RdxGet("otp:" + userID)
	if err != nil || stored == "" || stored != req.OTP {
		apperr.Respond(w, apperr.BadRequest("Invalid or expired OTP"))
		return
	}
	rdx.RdxDel("otp:" + userID)

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"email_verified": true}},
	); err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Email verified successfully",
	})
}

// ForgetPassword emails a reset link holding an opaque token. The response is
// the same whether or not the email exists, so the endpoint cannot be used to
// probe for accounts.
func ForgetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == nil {
		token, terr := randomHex(32)
		if terr == nil {
			if rerr := rdx.SetWithExpiry("pwreset:"+user.UserID, hashToken(token), resetTokenTTL); rerr == nil {
				mailer.SendAsync(user.Email, "Reset your password",
					mailer.ResetPasswordBody(user.FirstName, user.UserID, token))
			}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "If the email exists, a reset link has been sent",
	})
}

// ResetPassword consumes a reset token and replaces the password. All refresh
// tokens are revoked so stolen sessions die with the old password.
func ResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req struct {
		UserID   string `json:"userid"`
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.Token == "" || req.Password == "" {
		apperr.Respond(w, apperr.MissingFields())
		return
	}
	if !utils.ValidPassword(req.Password) {
		apperr.Respond(w, apperr.BadRequest("Password must be at least 8 characters with uppercase, lowercase, digit and special character"))
		return
	}

	stored, err := rdx.RdxGet("pwreset:" + req.UserID)
	if err != nil || stored == "" || stored != hashToken(req.Token) {
		apperr.Respond(w, apperr.BadRequest("Invalid or expired reset token"))
		return
	}
	rdx.RdxDel("pwreset:" + req.UserID)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": req.UserID},
		bson.M{
			"$set":   bson.M{"password": string(hashed)},
			"$unset": bson.M{"refresh_token": "", "refresh_expiry": ""},
		},
	)
	if err != nil {
		apperr.Respond(w, apperr.ServerError(err))
		return
	}
	if res.MatchedCount == 0 {
		apperr.Respond(w, apperr.NotFound("User not found"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"status":  "success",
		"message": "Password reset successfully",
	})
}
