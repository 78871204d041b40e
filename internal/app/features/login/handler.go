// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	uierrors "github.com/dalemusser/courseforge/internal/app/features/errors"
	userstore "github.com/dalemusser/courseforge/internal/app/store/users"
	"github.com/dalemusser/courseforge/internal/app/system/auth"
	"github.com/dalemusser/courseforge/internal/app/system/timeouts"
	"github.com/dalemusser/courseforge/internal/app/system/viewdata"
	"github.com/dalemusser/courseforge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserSource is the slice of the user store this feature needs.
type UserSource interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type Handler struct {
	Users         UserSource
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
	GoogleEnabled bool
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, googleEnabled bool, logger *zap.Logger) *Handler {
	return &Handler{
		Users:         userstore.New(db),
		Log:           logger,
		ErrLog:        errLog,
		GoogleEnabled: googleEnabled,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	Email         string
	ReturnURL     string
	GoogleEnabled bool
}

// ServeLogin handles GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Login", "/"),
		ReturnURL:     query.Get(r, "return"),
		GoogleEnabled: h.GoogleEnabled,
	})
}

// HandleLoginPost handles POST /login.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	ret := strings.TrimSpace(r.FormValue("return"))

	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter your email and password.", email, ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err == userstore.ErrNotFound {
		h.renderFormWithError(w, r, "Incorrect email or password.", email, ret)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "find user failed", err, "A server error occurred.", "/login")
		return
	}

	if strings.EqualFold(u.Status, "disabled") {
		h.renderFormWithError(w, r, "Your account is currently disabled. Please contact an administrator.", email, ret)
		return
	}

	if u.AuthMethod == "google" {
		if !h.GoogleEnabled {
			h.renderFormWithError(w, r, "Google sign-in is not configured. Please contact an administrator.", email, ret)
			return
		}
		target := "/auth/google"
		if ret != "" {
			target += "?return=" + url.QueryEscape(ret)
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	if u.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		h.Log.Info("login failed", zap.String("email", u.EmailCI))
		h.renderFormWithError(w, r, "Incorrect email or password.", email, ret)
		return
	}

	if err := auth.SignIn(w, r, &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "sign in failed", err, "A server error occurred.", "/login")
		return
	}

	h.Log.Info("login succeeded", zap.String("user_id", u.ID.Hex()), zap.String("role", u.Role))
	http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/"), http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email, ret string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Login", "/"),
		Error:         msg,
		Email:         email,
		ReturnURL:     ret,
		GoogleEnabled: h.GoogleEnabled,
	})
}
