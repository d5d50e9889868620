package services

import (
	"database/sql"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/booknest/booknest-be/internal/apperror"
	"github.com/booknest/booknest-be/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordSymbols = "!@#$%^&*"

// UserServiceProvider defines the interface for account services.
type UserServiceProvider interface {
	Register(username, email, password, confirmPassword string) error
	Authenticate(username, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	GetProfile(id string) (models.ProfileView, error)
	UpdateProfile(id, username string, favoriteGenres []string) (models.User, error)
	ChangePassword(id, oldPassword, newPassword string) error
	GetFavoriteGenres(id string) ([]string, error)
}

// UserService provides business logic for account management.
type UserService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, eventSvc EventServiceProvider) *UserService {
	return &UserService{db: db, eventSvc: eventSvc}
}

// Register validates the registration input, checks username and email
// uniqueness and stores the new account with a bcrypt-hashed credential.
// The two uniqueness lookups give field-specific messages; the UNIQUE
// constraints on the users table close the race between them.
func (s *UserService) Register(username, email, password, confirmPassword string) error {
	if username == "" || email == "" || password == "" || confirmPassword == "" {
		return apperror.NewValidation("All fields are required.")
	}
	if password != confirmPassword {
		return apperror.NewValidation("Passwords do not match.")
	}
	if !emailPattern.MatchString(email) {
		return apperror.NewValidation("Invalid email format.")
	}
	if !validPassword(password) {
		return apperror.NewValidation("Password must have at least one uppercase letter, one number, one special character, and minimum 8 characters.")
	}

	taken, err := s.exists("username", username)
	if err != nil {
		return apperror.NewInternal("failed to check username", err)
	}
	if taken {
		return apperror.NewConflict("Username already exists. Please try a different username.")
	}

	taken, err = s.exists("email", email)
	if err != nil {
		return apperror.NewInternal("failed to check email", err)
	}
	if taken {
		return apperror.NewConflict("Email is already registered. Please try a different one.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal("failed to hash password", err)
	}

	id := uuid.New().String()
	_, err = s.db.Exec(
		"INSERT INTO users (id, username, email, password_hash, favorite_genres_json, created_at) VALUES (?, ?, ?, ?, '[]', ?)",
		id, username, email, string(hashedPassword), time.Now().Unix(),
	)
	if err != nil {
		if conflict := conflictFromInsert(err); conflict != nil {
			return conflict
		}
		return apperror.NewInternal("failed to create user", err)
	}

	s.eventSvc.CreateEvent("account.register", "info", "New account registered: "+username, &id)
	return nil
}

// Authenticate verifies a user's credentials by username and returns the
// account summary on success.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	var user models.User
	var genresJSON string
	var createdAt int64
	row := s.db.QueryRow("SELECT id, username, email, password_hash, favorite_genres_json, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &genresJSON, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperror.NewNotFound("Username does not exist.")
		}
		return models.User{}, apperror.NewInternal("failed to look up user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, apperror.NewBadCredential("Incorrect password.")
	}

	user.FavoriteGenres = decodeGenres(genresJSON)
	user.CreatedAt = time.Unix(createdAt, 0)
	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID, without the credential
// hash.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	var genresJSON string
	var createdAt int64
	row := s.db.QueryRow("SELECT id, username, email, favorite_genres_json, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &genresJSON, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperror.NewNotFound("User not found")
		}
		return models.User{}, apperror.NewInternal("failed to get user", err)
	}
	user.FavoriteGenres = decodeGenres(genresJSON)
	user.CreatedAt = time.Unix(createdAt, 0)
	return user, nil
}

// GetProfile builds the UI-friendly profile view: missing data becomes
// placeholder text, and the challenge summary is derived from the
// current-year goal and read count.
func (s *UserService) GetProfile(id string) (models.ProfileView, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return models.ProfileView{}, err
	}

	view := models.ProfileView{
		Username: user.Username,
		Challenge: models.ChallengeSummary{
			Year:   "Not yet started",
			Status: "Not yet started",
		},
	}

	if len(user.FavoriteGenres) > 0 {
		view.FavoriteGenres = user.FavoriteGenres
	} else {
		view.FavoriteGenres = "Not yet selected"
	}

	year := currentYear()
	var goal int
	err = s.db.QueryRow("SELECT goal FROM challenge_goals WHERE user_id = ? AND year = ?", id, year).Scan(&goal)
	if err != nil && err != sql.ErrNoRows {
		return models.ProfileView{}, apperror.NewInternal("failed to get challenge goal", err)
	}
	if err == nil {
		read, countErr := s.countBooksReadInYear(id, year)
		if countErr != nil {
			return models.ProfileView{}, countErr
		}
		status := "In progress"
		if read >= goal {
			status = "Completed"
		}
		view.Challenge = models.ChallengeSummary{Year: year, Status: status, Progress: read}
	}

	return view, nil
}

// UpdateProfile overwrites the username and favorite genres. No merge
// semantics: the stored genre list becomes exactly what was passed in.
func (s *UserService) UpdateProfile(id, username string, favoriteGenres []string) (models.User, error) {
	genresJSON, err := encodeGenres(favoriteGenres)
	if err != nil {
		return models.User{}, apperror.NewInternal("failed to encode genres", err)
	}

	res, err := s.db.Exec("UPDATE users SET username = ?, favorite_genres_json = ? WHERE id = ?", username, genresJSON, id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.User{}, apperror.NewConflict("Username already exists. Please try a different username.")
		}
		return models.User{}, apperror.NewInternal("failed to update user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.User{}, apperror.NewNotFound("User not found")
	}

	s.eventSvc.CreateEvent("account.profile.update", "info", "Profile updated for "+username, &id)
	return s.GetUserByID(id)
}

// ChangePassword verifies the old password before re-hashing the new one.
func (s *UserService) ChangePassword(id, oldPassword, newPassword string) error {
	var hash string
	err := s.db.QueryRow("SELECT password_hash FROM users WHERE id = ?", id).Scan(&hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperror.NewNotFound("User not found")
		}
		return apperror.NewInternal("failed to get user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(oldPassword)) != nil {
		return apperror.NewBadCredential("Old password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal("failed to hash new password", err)
	}

	if _, err := s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hashedPassword), id); err != nil {
		return apperror.NewInternal("failed to update password", err)
	}

	s.eventSvc.CreateEvent("account.password.change", "info", "Password changed", &id)
	return nil
}

// GetFavoriteGenres returns just the genre list for a user.
func (s *UserService) GetFavoriteGenres(id string) ([]string, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	return user.FavoriteGenres, nil
}

// conflictFromInsert maps a UNIQUE violation raised by the insert to the
// field-specific Conflict message, or nil for any other error. The
// pre-insert lookups normally catch duplicates first; this covers the race
// between lookup and insert, where the violated index names the field.
func conflictFromInsert(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return nil
	}
	if strings.Contains(msg, "users.email") {
		return apperror.NewConflict("Email is already registered. Please try a different one.")
	}
	return apperror.NewConflict("Username already exists. Please try a different username.")
}

func (s *UserService) exists(column, value string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM users WHERE "+column+" = ?", value).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) countBooksReadInYear(userID, year string) (int, error) {
	entries, err := listShelf(s.db, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if e.Status == models.StatusRead && yearOf(e.Timestamp) == year {
			count++
		}
	}
	return count, nil
}

// validPassword enforces the registration password policy: minimum 8
// characters, at least one uppercase letter, one digit and one symbol.
func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	return hasUpper && hasDigit && hasSymbol
}

func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	b, err := json.Marshal(genres)
	return string(b), err
}

func decodeGenres(genresJSON string) []string {
	var genres []string
	if err := json.Unmarshal([]byte(genresJSON), &genres); err != nil {
		return []string{}
	}
	return genres
}

func currentYear() string {
	return time.Now().Format("2006")
}

func yearOf(t time.Time) string {
	return t.Format("2006")
}
