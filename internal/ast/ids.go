package ast

type (
	ItemID    uint32
	AssignID  uint32
	PayloadID uint32
)

const (
	NoItemID    ItemID    = 0
	NoAssignID  AssignID  = 0
	NoPayloadID PayloadID = 0
)

func (id ItemID) IsValid() bool    { return id != NoItemID }
func (id AssignID) IsValid() bool  { return id != NoAssignID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
