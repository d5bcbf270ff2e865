package web

import (
	"errors"
	"net/http"

	"campus/internal/adapters/http/middleware"
	"campus/internal/application/orchestrators"
	accountDomain "campus/internal/domain/account"
)

// registerForm carries the self-registration fields.
type registerForm struct {
	Username string `validate:"required,min=3,max=50"`
	Email    string `validate:"required,email"`
	FullName string `validate:"required,max=150"`
	Password string `validate:"required,min=8"`
}

// handleGetLogin renders the login page.
func handleGetLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, roleHome(r), http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "login.html", map[string]any{})
}

// handlePostLogin checks credentials and opens a session.
func handlePostLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	input := orchestrators.LoginInput{}
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Username = r.FormValue("Username")
		input.Password = r.FormValue("Password")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	result, err := orchestrators.ExecuteLogin(ctx, input, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if errors.Is(err, orchestrators.ErrInvalidCredentials) {
		if isHTML {
			w.WriteHeader(http.StatusUnauthorized)
			renderTemplate(w, r, "login.html", map[string]any{
				"Error": "Invalid username or password.",
			})
			return
		}
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	token, err := sessions.Create(result.AccountID, result.Username, result.FullName, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	if isHTML {
		http.Redirect(w, r, homeForRole(result.Role), http.StatusSeeOther)
		return
	}
	writeJSON(w, map[string]string{"role": result.Role})
}

// handleGetRegister renders the student signup page.
func handleGetRegister(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "register.html", map[string]any{})
}

// handlePostRegister creates a student account. Instructor accounts are
// created by admins on the accounts screen instead.
func handlePostRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	form := registerForm{}
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		form.Username = r.FormValue("Username")
		form.Email = r.FormValue("Email")
		form.FullName = r.FormValue("FullName")
		form.Password = r.FormValue("Password")
	} else {
		if err := strictDecode(r, &form); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	if err := validate.Struct(form); err != nil {
		if isHTML {
			w.WriteHeader(http.StatusBadRequest)
			renderTemplate(w, r, "register.html", map[string]any{
				"Error": "Please fill in all fields. Passwords need at least 8 characters.",
				"Form":  form,
			})
			return
		}
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteRegisterAccount(ctx, orchestrators.RegisterAccountInput{
		Username: form.Username,
		Email:    form.Email,
		FullName: form.FullName,
		Password: form.Password,
		Role:     accountDomain.RoleStudent,
	}, orchestrators.RegisterAccountDeps{
		AccountStore: stores.AccountStore,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if errors.Is(err, accountDomain.ErrUsernameTaken) || errors.Is(err, accountDomain.ErrEmailTaken) {
		if isHTML {
			w.WriteHeader(http.StatusConflict)
			renderTemplate(w, r, "register.html", map[string]any{
				"Error": err.Error(),
				"Form":  form,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	token, err := sessions.Create(result.AccountID, result.Username, form.FullName, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	if isHTML {
		http.Redirect(w, r, "/student/dashboard", http.StatusSeeOther)
		return
	}
	writeJSON(w, map[string]string{"account_id": result.AccountID})
}

// handleLogout closes the session and clears the cookie.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("campus_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleProfile shows and updates the signed-in account's profile.
func handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, _ := middleware.GetSessionFromContext(ctx)

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		err := orchestrators.ExecuteUpdateProfile(ctx, orchestrators.UpdateProfileInput{
			AccountID:   sess.AccountID,
			Email:       r.FormValue("Email"),
			FullName:    r.FormValue("FullName"),
			NewPassword: r.FormValue("NewPassword"),
		}, orchestrators.UpdateProfileDeps{AccountStore: stores.AccountStore})
		if err != nil {
			internalError(w, err)
			return
		}
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	acct, err := stores.AccountStore.GetByID(ctx, sess.AccountID)
	if err != nil {
		internalError(w, err)
		return
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "profile.html", map[string]any{"Account": acct})
		return
	}
	writeJSON(w, map[string]string{
		"username":  acct.Username,
		"email":     acct.Email,
		"full_name": acct.FullName,
		"role":      acct.Role,
	})
}

// homeForRole maps a role to its landing page.
func homeForRole(role string) string {
	switch role {
	case accountDomain.RoleAdmin:
		return "/admin/dashboard"
	case accountDomain.RoleInstructor:
		return "/instructor/dashboard"
	case accountDomain.RoleStudent:
		return "/student/dashboard"
	}
	return "/"
}

// roleHome resolves the landing page for the current session.
func roleHome(r *http.Request) string {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		return homeForRole(sess.Role)
	}
	return "/"
}
