package job

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/shared"
)

// TechnicianRef is the technician assignment of a job: either unassigned
// or a reference to a technician by id. The zero value is unassigned.
type TechnicianRef struct {
	id       uuid.UUID
	assigned bool
}

// Unassigned returns a reference to no technician
func Unassigned() TechnicianRef {
	return TechnicianRef{}
}

// AssignedTo returns a reference to the technician with the given id
func AssignedTo(id uuid.UUID) TechnicianRef {
	if id == uuid.Nil {
		return TechnicianRef{}
	}
	return TechnicianRef{id: id, assigned: true}
}

// RefFromID converts a nullable stored id into a reference
func RefFromID(id *uuid.UUID) TechnicianRef {
	if id == nil {
		return Unassigned()
	}
	return AssignedTo(*id)
}

// IsAssigned reports whether the reference points at a technician
func (r TechnicianRef) IsAssigned() bool {
	return r.assigned
}

// ID returns the technician id and whether one is set
func (r TechnicianRef) ID() (uuid.UUID, bool) {
	return r.id, r.assigned
}

// IDPtr returns the technician id as a nullable value for storage
func (r TechnicianRef) IDPtr() *uuid.UUID {
	if !r.assigned {
		return nil
	}
	id := r.id
	return &id
}

// String returns the id or "unassigned"
func (r TechnicianRef) String() string {
	if !r.assigned {
		return "unassigned"
	}
	return r.id.String()
}

// ParseTechnicianRef normalizes the accepted technician inputs into a
// reference: a uuid string, an object carrying "id" or "_id", null, an
// empty string or the literal "unassigned". Anything else is rejected.
func ParseTechnicianRef(raw json.RawMessage) (TechnicianRef, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Unassigned(), nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Unassigned(), invalidTechnicianRef()
		}
		return ParseTechnicianID(s)
	case '{':
		var obj struct {
			ID         *string `json:"id"`
			MongoStyle *string `json:"_id"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return Unassigned(), invalidTechnicianRef()
		}
		switch {
		case obj.ID != nil:
			return ParseTechnicianID(*obj.ID)
		case obj.MongoStyle != nil:
			return ParseTechnicianID(*obj.MongoStyle)
		}
		return Unassigned(), invalidTechnicianRef()
	}
	return Unassigned(), invalidTechnicianRef()
}

// ParseTechnicianID normalizes a plain string technician reference
func ParseTechnicianID(s string) (TechnicianRef, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "unassigned") {
		return Unassigned(), nil
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return Unassigned(), invalidTechnicianRef()
	}
	return AssignedTo(id), nil
}

func invalidTechnicianRef() error {
	return shared.NewValidationError("INVALID_TECHNICIAN", "Technician must be a valid technician id or \"unassigned\"")
}
