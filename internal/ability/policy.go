package ability

// builder collects rules for one principal in registration order.
type builder struct {
	rules []Rule
}

func (b *builder) can(action Action, subject Subject, condition ...FieldValue) {
	b.rules = append(b.rules, Rule{Action: action, Subject: subject, Condition: condition})
}

// ownedBy scopes a rule to resources whose user_id equals the principal's id.
func ownedBy(p Principal) FieldValue {
	return FieldValue{Field: FieldUserID, Value: p.ID}
}

// policies is the static per-role rule table. Each entry is a pure function
// of the principal; it has no side effects and reads no mutable state, so
// PolicyFor is safe to call concurrently.
var policies = map[Role]func(p Principal, b *builder){
	RoleGuest: func(p Principal, b *builder) {
		b.can(ActionRead, SubjectProduct)
	},

	RoleUser: func(p Principal, b *builder) {
		// Browse and place orders.
		b.can(ActionView, SubjectOrder)
		b.can(ActionCreate, SubjectOrder)
		b.can(ActionRead, SubjectOrder, ownedBy(p))

		// Update own account.
		b.can(ActionUpdate, SubjectUser, FieldValue{Field: FieldID, Value: p.ID})

		// Own cart.
		b.can(ActionRead, SubjectCart, ownedBy(p))
		b.can(ActionUpdate, SubjectCart, ownedBy(p))

		// Delivery addresses: listing is unconditional, everything else is
		// scoped to ownership.
		b.can(ActionView, SubjectDeliveryAddress)
		b.can(ActionCreate, SubjectDeliveryAddress, ownedBy(p))
		b.can(ActionRead, SubjectDeliveryAddress, ownedBy(p))
		b.can(ActionUpdate, SubjectDeliveryAddress, ownedBy(p))
		b.can(ActionDelete, SubjectDeliveryAddress, ownedBy(p))

		// Own invoices.
		b.can(ActionRead, SubjectInvoice, ownedBy(p))
	},

	RoleAdmin: func(p Principal, b *builder) {
		b.can(ActionManage, SubjectAll)
	},
}

// PolicyFor compiles the rule set for a principal. Principals with an
// unregistered role receive the guest rules; PolicyFor never fails.
func PolicyFor(p Principal) Ability {
	define, ok := policies[p.Role]
	if !ok {
		define = policies[RoleGuest]
	}

	b := &builder{}
	define(p, b)
	return Ability{rules: b.rules}
}
