package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mwangaza/board/internal/db"
)

func generateToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, "login.html", nil)
		return
	}
	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	if email == "" {
		renderTemplate(w, "login.html", map[string]any{"Error": "Email is required"})
		return
	}

	u, err := db.GetUserByEmail(email)
	if errors.Is(err, db.ErrNotFound) {
		renderTemplate(w, "login.html", map[string]any{"Error": "No account with that email"})
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if !u.IsActive {
		renderTemplate(w, "login.html", map[string]any{"Error": "This account has been deactivated"})
		return
	}

	token := generateToken()
	if err := db.CreateMagicToken(email, token); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	link := fmt.Sprintf("%s/auth/approve?token=%s", cfg.BaseURL, token)
	go sendMagicEmail(email, link)
	logger.Info("magic link issued", zap.String("email", email))

	renderTemplate(w, "login_sent.html", map[string]any{"Email": email})
}

func handleApprove(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Invalid token", http.StatusBadRequest)
		return
	}

	mt, err := db.GetMagicToken(token)
	if err != nil {
		renderTemplate(w, "approve.html", map[string]any{"Error": "Invalid or expired link"})
		return
	}
	if mt.ApprovedAt != nil {
		renderTemplate(w, "approve.html", map[string]any{"Error": "This link has already been used"})
		return
	}
	if time.Since(mt.CreatedAt) > 15*time.Minute {
		renderTemplate(w, "approve.html", map[string]any{"Error": "This link has expired (15 min)"})
		return
	}

	if r.Method == "GET" {
		renderTemplate(w, "approve.html", map[string]any{"Token": token, "Email": mt.Email})
		return
	}

	if err := db.ApproveMagicToken(mt.ID); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	u, err := db.GetUserByEmail(mt.Email)
	if err != nil {
		http.Error(w, "User not found", http.StatusInternalServerError)
		return
	}

	sessionToken := generateToken()
	expires := time.Now().Add(30 * 24 * time.Hour) // 30 days
	if err := db.CreateSession(u.ID, sessionToken, expires); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sessionToken,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/tabs/dashboard", http.StatusSeeOther)
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err == nil {
		db.DeleteSession(cookie.Value)
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func sendMagicEmail(to, link string) {
	if cfg.SMTP.Host == "" {
		logger.Info("SMTP not configured, magic link logged only", zap.String("link", link))
		return
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Board Login\r\n\r\nClick to log in:\n%s\n\nThis link expires in 15 minutes.",
		cfg.SMTP.From, to, link)
	auth := smtp.PlainAuth("", cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.Host)
	addr := fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	if err := smtp.SendMail(addr, auth, cfg.SMTP.From, []string{to}, []byte(msg)); err != nil {
		logger.Warn("send magic email failed", zap.String("to", to), zap.Error(err))
	}
}
