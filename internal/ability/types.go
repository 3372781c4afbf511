package ability

import "github.com/google/uuid"

// Action represents an operation requested on a subject
type Action string

const (
	ActionRead   Action = "read"
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionManage is the wildcard action: a rule granting it matches any
	// requested action.
	ActionManage Action = "manage"
)

// Subject names a resource kind
type Subject string

const (
	// SubjectAll is the wildcard subject: a rule granting it matches any
	// requested subject.
	SubjectAll             Subject = "all"
	SubjectProduct         Subject = "Product"
	SubjectCategory        Subject = "Category"
	SubjectTag             Subject = "Tag"
	SubjectOrder           Subject = "Order"
	SubjectCart            Subject = "Cart"
	SubjectUser            Subject = "User"
	SubjectDeliveryAddress Subject = "DeliveryAddress"
	SubjectInvoice         Subject = "Invoice"
)

// Condition field names used by the built-in policies
const (
	FieldID     = "id"
	FieldUserID = "user_id"
)

// Role is a principal's role in the system
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored role string to a Role. Unknown or empty strings
// resolve to guest so a malformed principal never gains permissions.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleUser:
		return RoleUser
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleGuest
	}
}

// Principal is the actor a request is performed as. The zero value is the
// anonymous guest. A Principal is immutable once constructed for a request.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

// Guest is the implicit principal when no valid session exists.
var Guest = Principal{Role: RoleGuest}

// Resource is the field map of a concrete entity being acted on, supplied by
// the caller when a condition-bearing check is needed.
type Resource map[string]any

// FieldValue is one field-equality requirement of a Condition.
type FieldValue struct {
	Field string
	Value any
}

// Condition scopes a rule to resource instances whose listed fields all equal
// the expected values. An empty condition means the rule is unconditional.
type Condition []FieldValue

// Rule is a single (action, subject, optional condition) permission grant.
// Rules are allow-only; there is no explicit deny.
type Rule struct {
	Action    Action
	Subject   Subject
	Condition Condition
}
