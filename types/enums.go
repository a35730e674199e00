package types

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// enumTable maps enum variants to their wire strings and back. Wire values
// missing from the table parse to the designated other variant.
type enumTable[E ~int] struct {
	toWire   map[E]string
	fromWire map[string]E
	other    E
	fold     bool
}

func newEnumTable[E ~int](other E, fold bool, wire map[E]string) *enumTable[E] {
	t := &enumTable[E]{
		toWire:   wire,
		fromWire: make(map[string]E, len(wire)),
		other:    other,
		fold:     fold,
	}
	for e, s := range wire {
		t.fromWire[t.key(s)] = e
	}
	return t
}

func (t *enumTable[E]) key(s string) string {
	if t.fold {
		return strings.ToUpper(s)
	}
	return s
}

func (t *enumTable[E]) format(e E) (string, error) {
	s, ok := t.toWire[e]
	if !ok {
		return "", fmt.Errorf("types: no wire value for variant %d", e)
	}
	return s, nil
}

func (t *enumTable[E]) parse(s string) E {
	if e, ok := t.fromWire[t.key(s)]; ok {
		return e
	}
	return t.other
}

// BroadcasterType is the partner status of a broadcaster.
type BroadcasterType int

const (
	// BroadcasterTypeNone is a regular broadcaster, and also the variant any
	// unrecognized wire value decodes to.
	BroadcasterTypeNone BroadcasterType = iota
	BroadcasterTypeAffiliate
	BroadcasterTypePartner
)

var broadcasterTypes = newEnumTable(BroadcasterTypeNone, false, map[BroadcasterType]string{
	BroadcasterTypeNone:      "",
	BroadcasterTypeAffiliate: "affiliate",
	BroadcasterTypePartner:   "partner",
})

func (b BroadcasterType) String() string {
	s, _ := broadcasterTypes.format(b)
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (b BroadcasterType) MarshalText() ([]byte, error) {
	s, err := broadcasterTypes.format(b)
	return []byte(s), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BroadcasterType) UnmarshalText(text []byte) error {
	*b = broadcasterTypes.parse(string(text))
	return nil
}

// UserType marks Twitch staff accounts.
type UserType int

const (
	UserTypeNone UserType = iota
	UserTypeStaff
	UserTypeAdmin
	UserTypeGlobalMod
)

var userTypes = newEnumTable(UserTypeNone, false, map[UserType]string{
	UserTypeNone:      "",
	UserTypeStaff:     "staff",
	UserTypeAdmin:     "admin",
	UserTypeGlobalMod: "global_mod",
})

func (u UserType) String() string {
	s, _ := userTypes.format(u)
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (u UserType) MarshalText() ([]byte, error) {
	s, err := userTypes.format(u)
	return []byte(s), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UserType) UnmarshalText(text []byte) error {
	*u = userTypes.parse(string(text))
	return nil
}

// PredictionStatus is the state of a prediction. Helix sends upper case
// values and EventSub lower case ones; both decode to the same variant.
// The zero value means no status was sent and has no wire form.
type PredictionStatus int

const (
	PredictionStatusUnset PredictionStatus = iota
	PredictionStatusOther
	PredictionStatusActive
	PredictionStatusLocked
	PredictionStatusResolved
	PredictionStatusCanceled
)

var predictionStatuses = newEnumTable(PredictionStatusOther, true, map[PredictionStatus]string{
	PredictionStatusOther:    "OTHER",
	PredictionStatusActive:   "ACTIVE",
	PredictionStatusLocked:   "LOCKED",
	PredictionStatusResolved: "RESOLVED",
	PredictionStatusCanceled: "CANCELED",
})

func (p PredictionStatus) String() string {
	s, _ := predictionStatuses.format(p)
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (p PredictionStatus) MarshalText() ([]byte, error) {
	s, err := predictionStatuses.format(p)
	return []byte(s), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PredictionStatus) UnmarshalText(text []byte) error {
	*p = predictionStatuses.parse(string(text))
	return nil
}

// PollStatus is the state of a poll. The zero value means no status was
// sent and has no wire form.
type PollStatus int

const (
	PollStatusUnset PollStatus = iota
	PollStatusOther
	PollStatusActive
	PollStatusCompleted
	PollStatusTerminated
	PollStatusArchived
	PollStatusModerated
	PollStatusInvalid
)

var pollStatuses = newEnumTable(PollStatusOther, true, map[PollStatus]string{
	PollStatusOther:      "OTHER",
	PollStatusActive:     "ACTIVE",
	PollStatusCompleted:  "COMPLETED",
	PollStatusTerminated: "TERMINATED",
	PollStatusArchived:   "ARCHIVED",
	PollStatusModerated:  "MODERATED",
	PollStatusInvalid:    "INVALID",
})

func (p PollStatus) String() string {
	s, _ := pollStatuses.format(p)
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (p PollStatus) MarshalText() ([]byte, error) {
	s, err := pollStatuses.format(p)
	return []byte(s), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PollStatus) UnmarshalText(text []byte) error {
	*p = pollStatuses.parse(string(text))
	return nil
}

type tierVariant int

const (
	tierOther tierVariant = iota
	tier1
	tier2
	tier3
	tierPrime
)

var tiers = newEnumTable(tierOther, false, map[tierVariant]string{
	tier1:     "1000",
	tier2:     "2000",
	tier3:     "3000",
	tierPrime: "Prime",
})

// SubscriptionTier is a subscription tier. Unknown wire values are kept
// verbatim in the other variant so they survive re-encoding.
type SubscriptionTier struct {
	v   tierVariant
	raw string
}

var (
	// SubscriptionTier1 is the $4.99 tier.
	SubscriptionTier1 = SubscriptionTier{v: tier1}
	// SubscriptionTier2 is the $9.99 tier.
	SubscriptionTier2 = SubscriptionTier{v: tier2}
	// SubscriptionTier3 is the $24.99 tier.
	SubscriptionTier3 = SubscriptionTier{v: tier3}
	// SubscriptionTierPrime is a Prime Gaming subscription.
	SubscriptionTierPrime = SubscriptionTier{v: tierPrime}
)

// ParseSubscriptionTier maps a wire value to its tier.
func ParseSubscriptionTier(s string) SubscriptionTier {
	v := tiers.parse(s)
	if v == tierOther {
		return SubscriptionTier{v: tierOther, raw: s}
	}
	return SubscriptionTier{v: v}
}

// IsOther reports whether the tier is not one of the known tiers.
func (t SubscriptionTier) IsOther() bool { return t.v == tierOther }

// Validate implements validation.Validatable. Only an empty or absent tier
// fails.
func (t SubscriptionTier) Validate() error {
	if t == (SubscriptionTier{}) {
		return validation.ErrRequired
	}
	return nil
}

func (t SubscriptionTier) String() string {
	if t.v == tierOther {
		return t.raw
	}
	s, _ := tiers.format(t.v)
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (t SubscriptionTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SubscriptionTier) UnmarshalText(text []byte) error {
	*t = ParseSubscriptionTier(string(text))
	return nil
}
