package depot

import "fmt"

type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "storage is currently locked"
}

// InvalidEntityError reports the null entity or an id that was never handed
// out by the storage.
type InvalidEntityError struct {
	ID EntityID
}

func (e InvalidEntityError) Error() string {
	if e.ID == NullEntity {
		return "null entity cannot be operated on"
	}
	return fmt.Sprintf("invalid entity id out of bounds: %d", e.ID)
}

type DeadEntityError struct {
	ID EntityID
}

func (e DeadEntityError) Error() string {
	return fmt.Sprintf("attempting to access inactive entity with id: %d", e.ID)
}

type UnregisteredComponentError struct {
	Component string
}

func (e UnregisteredComponentError) Error() string {
	return fmt.Sprintf("attempting to operate on unregistered component %q", e.Component)
}

type DuplicateRegistrationError struct {
	Component string
}

func (e DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("component %q already registered", e.Component)
}

type MissingComponentError struct {
	ID        EntityID
	Name      string
	Component string
}

func (e MissingComponentError) Error() string {
	return fmt.Sprintf("['%s', ID: %d] missing component in %q pool", e.Name, e.ID, e.Component)
}

// CapacityExceededError is returned when a fixed ceiling (entities or
// component types) would be crossed.
type CapacityExceededError struct {
	Resource string
	Limit    uint64
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("%s limit exceeded (%d)", e.Resource, e.Limit)
}

type EmptyViewError struct{}

func (e EmptyViewError) Error() string {
	return "view requires at least one component"
}
