package models

// Principal roles
const (
	RoleGuest   = "guest"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// Participation roles
const (
	RoleParticipant = "participant"
	RoleWinner      = "winner"
)

// Contest status constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Collection names
const (
	CollectionUsers        = "users"
	CollectionContests     = "contests"
	CollectionParticipates = "participates"
)

// Document field names shared by handlers and stores
const (
	FieldID               = "_id"
	FieldEmail            = "email"
	FieldName             = "name"
	FieldImage            = "image"
	FieldRole             = "role"
	FieldStatus           = "status"
	FieldTag              = "tag"
	FieldCreatorEmail     = "creatorEmail"
	FieldParticipateEmail = "participateEmail"
)

// ContestReplaceFields are always written by a contest update, whether or not
// the request body carries them.
var ContestReplaceFields = []string{
	"name", "image", "price", "prize", "tag", "date", "description", "task",
}

// SearchFields is the projection returned by contest search.
var SearchFields = []string{FieldName, FieldImage}

// Request types

type TokenRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// Response types

type TokenResponse struct {
	Token string `json:"token"`
}

type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}

type CreatorCheckResponse struct {
	Creator bool `json:"creator"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UserExistsResponse is returned instead of an insert result when the email
// is already registered. InsertedID is always null.
type UserExistsResponse struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
}

// Error response

type ErrorResponse struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}
