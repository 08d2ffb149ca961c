package tutee

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tracko-hub/tracko/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// Name Value Object
// ═══════════════════════════════════════════════════════════════════════════

// NameConstraints is shown when a name fails validation.
const NameConstraints = "Names should only contain alphanumeric characters and spaces, and it should not be blank"

var nameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ]*$`)

// Name is a tutee's full name.
type Name string

// IsValidName reports whether s is a valid name.
func IsValidName(s string) bool {
	return nameRegex.MatchString(s)
}

// String returns the string representation.
func (n Name) String() string {
	return string(n)
}

// NewName creates a Name. The input must already be trimmed and valid.
func NewName(s string) (Name, error) {
	if !IsValidName(s) {
		return "", shared.NewDomainError("tutee", "NewName", shared.ErrPrecondition, NameConstraints)
	}
	return Name(s), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Phone Value Object
// ═══════════════════════════════════════════════════════════════════════════

// PhoneConstraints is shown when a phone number fails validation.
const PhoneConstraints = "Phone numbers should only contain numbers, and it should be at least 3 digits long"

var phoneRegex = regexp.MustCompile(`^\d{3,}$`)

// Phone is a contact phone number.
type Phone string

// IsValidPhone reports whether s is a valid phone number.
func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// String returns the string representation.
func (p Phone) String() string {
	return string(p)
}

// NewPhone creates a Phone. The input must already be trimmed and valid.
func NewPhone(s string) (Phone, error) {
	if !IsValidPhone(s) {
		return "", shared.NewDomainError("tutee", "NewPhone", shared.ErrPrecondition, PhoneConstraints)
	}
	return Phone(s), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Address Value Object
// ═══════════════════════════════════════════════════════════════════════════

// AddressConstraints is shown when an address fails validation.
const AddressConstraints = "Addresses can take any values, and it should not be blank"

// The first character must not be whitespace, otherwise " " would pass.
var addressRegex = regexp.MustCompile(`^\S.*$`)

// Address is a tutee's home address.
type Address string

// IsValidAddress reports whether s is a valid address.
func IsValidAddress(s string) bool {
	return addressRegex.MatchString(s)
}

// String returns the string representation.
func (a Address) String() string {
	return string(a)
}

// NewAddress creates an Address. The input must already be trimmed and valid.
func NewAddress(s string) (Address, error) {
	if !IsValidAddress(s) {
		return "", shared.NewDomainError("tutee", "NewAddress", shared.ErrPrecondition, AddressConstraints)
	}
	return Address(s), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Level Value Object
// ═══════════════════════════════════════════════════════════════════════════

// LevelConstraints is shown when an education level fails validation.
const LevelConstraints = "Education level should be one of p1 to p6, s1 to s5 or j1 to j2 (case-insensitive)"

// Primary 1-6, secondary 1-5, junior college 1-2.
var levelRegex = regexp.MustCompile(`^(?i)(p[1-6]|s[1-5]|j[1-2])$`)

// Level is a tutee's education level, e.g. "p5" or "S3".
type Level string

// IsValidLevel reports whether s is a valid education level.
func IsValidLevel(s string) bool {
	return levelRegex.MatchString(s)
}

// String returns the string representation.
func (l Level) String() string {
	return string(l)
}

// Stage returns the school stage the level belongs to.
func (l Level) Stage() string {
	if l == "" {
		return ""
	}
	switch strings.ToLower(string(l[:1])) {
	case "p":
		return "primary"
	case "s":
		return "secondary"
	case "j":
		return "junior college"
	default:
		return ""
	}
}

// NewLevel creates a Level. The input must already be trimmed and valid.
func NewLevel(s string) (Level, error) {
	if !IsValidLevel(s) {
		return "", shared.NewDomainError("tutee", "NewLevel", shared.ErrPrecondition, LevelConstraints)
	}
	return Level(s), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Tag Value Object
// ═══════════════════════════════════════════════════════════════════════════

// TagConstraints is shown when a tag fails validation.
const TagConstraints = "Tags names should be alphanumeric"

var tagRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// Tag is a free-form alphanumeric label.
type Tag string

// IsValidTagName reports whether s is a valid tag name.
func IsValidTagName(s string) bool {
	return tagRegex.MatchString(s)
}

// String returns the tag in its display form.
func (t Tag) String() string {
	return "[" + string(t) + "]"
}

// NewTag creates a Tag. The input must already be trimmed and valid.
func NewTag(s string) (Tag, error) {
	if !IsValidTagName(s) {
		return "", shared.NewDomainError("tutee", "NewTag", shared.ErrPrecondition, TagConstraints)
	}
	return Tag(s), nil
}

// TagSet is a set of tags. Duplicates coalesce.
type TagSet map[Tag]struct{}

// NewTagSet builds a set from tags.
func NewTagSet(tags ...Tag) TagSet {
	set := make(TagSet, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// Add inserts a tag.
func (s TagSet) Add(t Tag) {
	s[t] = struct{}{}
}

// Contains reports whether t is in the set.
func (s TagSet) Contains(t Tag) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the tags in lexical order.
func (s TagSet) Sorted() []Tag {
	out := make([]Tag, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the sorted raw tag names.
func (s TagSet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, t := range sorted {
		out[i] = string(t)
	}
	return out
}
