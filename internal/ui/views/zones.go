package views

import (
	"fmt"
	"strconv"
	"strings"
)

// Zone id prefixes for mouse hit testing
const (
	fieldZonePrefix = "field:"
	menuZonePrefix  = "menu:"
	rowZonePrefix   = "row:"
	cardZonePrefix  = "card:"
)

// FieldZoneID marks the input box of a field
func FieldZoneID(fieldID string) string { return fieldZonePrefix + fieldID }

// MenuZoneID marks the whole open menu of a dropdown
func MenuZoneID(fieldID string) string { return menuZonePrefix + fieldID }

// RowZoneID marks row i of a dropdown menu
func RowZoneID(fieldID string, i int) string {
	return fmt.Sprintf("%s%s:%d", rowZonePrefix, fieldID, i)
}

// CardZoneID marks result card i
func CardZoneID(i int) string { return cardZonePrefix + strconv.Itoa(i) }

// ParseRowZoneID splits a row zone id into its field id and row index
func ParseRowZoneID(id string) (fieldID string, row int, ok bool) {
	rest, found := strings.CutPrefix(id, rowZonePrefix)
	if !found {
		return "", 0, false
	}
	sep := strings.LastIndexByte(rest, ':')
	if sep < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(rest[sep+1:])
	if err != nil {
		return "", 0, false
	}
	return rest[:sep], n, true
}
