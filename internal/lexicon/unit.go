package lexicon

import (
	"fmt"
)

// Unit đơn vị tính của một dòng hàng. Giá trị zero là UnitPiece.
type Unit uint8

const (
	UnitPiece Unit = iota
	UnitKg
	UnitG
	UnitDozen
)

var unitNames = [...]string{
	UnitPiece: "piece",
	UnitKg:    "kg",
	UnitG:     "g",
	UnitDozen: "dozen",
}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("Unit(%d)", uint8(u))
}

// Valid kiểm tra u là một trong các đơn vị đã định nghĩa
func (u Unit) Valid() bool {
	return int(u) < len(unitNames)
}

// ParseUnit chuyển tên đơn vị ("kg", "g", "dozen", "piece") sang Unit
func ParseUnit(s string) (Unit, error) {
	for i, name := range unitNames {
		if name == s {
			return Unit(i), nil
		}
	}
	return UnitPiece, fmt.Errorf("đơn vị không hợp lệ: %q", s)
}

func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("đơn vị không hợp lệ: %d", uint8(u))
	}
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
