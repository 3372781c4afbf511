package ability_test

import (
	"testing"

	"commerce-service/internal/ability"

	"github.com/google/uuid"
)

func TestGuestPolicy(t *testing.T) {
	ab := ability.PolicyFor(ability.Guest)

	tests := []struct {
		name     string
		action   ability.Action
		subject  ability.Subject
		expected bool
	}{
		{"Read product", ability.ActionRead, ability.SubjectProduct, true},
		{"Create product", ability.ActionCreate, ability.SubjectProduct, false},
		{"Read order", ability.ActionRead, ability.SubjectOrder, false},
		{"Manage all", ability.ActionManage, ability.SubjectAll, false},
		{"Unknown action", ability.Action("approve"), ability.SubjectProduct, false},
		{"Unknown subject", ability.ActionRead, ability.Subject("Warehouse"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ab.Can(tt.action, tt.subject, nil); got != tt.expected {
				t.Errorf("Can(%s, %s) = %v, expected %v", tt.action, tt.subject, got, tt.expected)
			}
		})
	}
}

func TestAdminPolicy(t *testing.T) {
	admin := ability.Principal{ID: uuid.New(), Role: ability.RoleAdmin}
	ab := ability.PolicyFor(admin)

	actions := []ability.Action{
		ability.ActionRead, ability.ActionView, ability.ActionCreate,
		ability.ActionUpdate, ability.ActionDelete, ability.ActionManage,
	}
	subjects := []ability.Subject{
		ability.SubjectProduct, ability.SubjectOrder, ability.SubjectCart,
		ability.SubjectUser, ability.SubjectDeliveryAddress, ability.SubjectInvoice,
		ability.SubjectTag, ability.SubjectCategory, ability.SubjectAll,
	}

	for _, action := range actions {
		for _, subject := range subjects {
			if !ab.Can(action, subject, nil) {
				t.Errorf("admin Can(%s, %s) = false, expected true", action, subject)
			}
			instance := ability.Resource{"user_id": uuid.New()}
			if !ab.Can(action, subject, instance) {
				t.Errorf("admin Can(%s, %s, instance) = false, expected true", action, subject)
			}
		}
	}
}

func TestOnlyAdminCanManageAll(t *testing.T) {
	for _, role := range []ability.Role{ability.RoleGuest, ability.RoleUser} {
		ab := ability.PolicyFor(ability.Principal{ID: uuid.New(), Role: role})
		if ab.Can(ability.ActionManage, ability.SubjectAll, nil) {
			t.Errorf("role %s Can(manage, all) = true, expected false", role)
		}
	}
}

func TestOwnershipCondition(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()
	owner := ability.Principal{ID: ownerID, Role: ability.RoleUser}
	ab := ability.PolicyFor(owner)

	tests := []struct {
		name     string
		instance ability.Resource
		expected bool
	}{
		{"Own cart", ability.Resource{"user_id": ownerID}, true},
		{"Someone else's cart", ability.Resource{"user_id": strangerID}, false},
		{"No instance supplied", nil, false},
		{"Field absent", ability.Resource{"owner": ownerID}, false},
		{"UUID as string", ability.Resource{"user_id": ownerID.String()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ab.Can(ability.ActionUpdate, ability.SubjectCart, tt.instance); got != tt.expected {
				t.Errorf("Can(update, Cart, %v) = %v, expected %v", tt.instance, got, tt.expected)
			}
		})
	}
}

func TestUserPolicy(t *testing.T) {
	userID := uuid.New()
	p := ability.Principal{ID: userID, Role: ability.RoleUser}
	ab := ability.PolicyFor(p)

	own := ability.Resource{"user_id": userID}
	foreign := ability.Resource{"user_id": uuid.New()}

	tests := []struct {
		name     string
		action   ability.Action
		subject  ability.Subject
		instance ability.Resource
		expected bool
	}{
		{"View orders", ability.ActionView, ability.SubjectOrder, nil, true},
		{"Create order", ability.ActionCreate, ability.SubjectOrder, nil, true},
		{"Read own order", ability.ActionRead, ability.SubjectOrder, own, true},
		{"Read foreign order", ability.ActionRead, ability.SubjectOrder, foreign, false},
		{"Update self", ability.ActionUpdate, ability.SubjectUser, ability.Resource{"id": userID}, true},
		{"Update other user", ability.ActionUpdate, ability.SubjectUser, ability.Resource{"id": uuid.New()}, false},
		{"View addresses", ability.ActionView, ability.SubjectDeliveryAddress, nil, true},
		{"Delete own address", ability.ActionDelete, ability.SubjectDeliveryAddress, own, true},
		{"Delete foreign address", ability.ActionDelete, ability.SubjectDeliveryAddress, foreign, false},
		{"Read own invoice", ability.ActionRead, ability.SubjectInvoice, own, true},
		{"Read product", ability.ActionRead, ability.SubjectProduct, nil, false},
		{"Create tag", ability.ActionCreate, ability.SubjectTag, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ab.Can(tt.action, tt.subject, tt.instance); got != tt.expected {
				t.Errorf("Can(%s, %s) = %v, expected %v", tt.action, tt.subject, got, tt.expected)
			}
		})
	}
}

func TestUnknownRoleFallsBackToGuest(t *testing.T) {
	p := ability.Principal{ID: uuid.New(), Role: ability.Role("superuser")}
	ab := ability.PolicyFor(p)

	if !ab.Can(ability.ActionRead, ability.SubjectProduct, nil) {
		t.Error("unknown role should fall back to guest permissions")
	}
	if ab.Can(ability.ActionCreate, ability.SubjectOrder, nil) {
		t.Error("unknown role should not gain user permissions")
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input    string
		expected ability.Role
	}{
		{"user", ability.RoleUser},
		{"admin", ability.RoleAdmin},
		{"guest", ability.RoleGuest},
		{"superuser", ability.RoleGuest},
		{"", ability.RoleGuest},
		{"Admin", ability.RoleGuest},
	}

	for _, tt := range tests {
		if got := ability.ParseRole(tt.input); got != tt.expected {
			t.Errorf("ParseRole(%q) = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}

func TestAbilitiesAreDeterministic(t *testing.T) {
	p := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}

	first := ability.PolicyFor(p).Rules()
	second := ability.PolicyFor(p).Rules()

	if len(first) != len(second) {
		t.Fatalf("rule counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Action != second[i].Action || first[i].Subject != second[i].Subject {
			t.Errorf("rule %d differs between two builds for the same principal", i)
		}
	}
}

func TestAbilitiesAreNotSharedAcrossPrincipals(t *testing.T) {
	a := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}
	b := ability.Principal{ID: uuid.New(), Role: ability.RoleUser}

	ownCart := ability.Resource{"user_id": a.ID}

	if !ability.PolicyFor(a).Can(ability.ActionUpdate, ability.SubjectCart, ownCart) {
		t.Error("principal should be able to update their own cart")
	}
	if ability.PolicyFor(b).Can(ability.ActionUpdate, ability.SubjectCart, ownCart) {
		t.Error("another principal's ability must not match the first principal's cart")
	}
}
