package parser

import (
	"path/filepath"
	"strconv"
	"strings"

	. "github.com/ttpr0/go-transit/util"
)

//*******************************************
// utility methods
//*******************************************

// Value of the first of keys that is set and not blank.
func _FirstTag(tags Dict[string, string], keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(tags.Get(key)); value != "" {
			return value
		}
	}
	return ""
}

func _IsPBF(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".pbf")
}

// Name not taken yet, derived from base and a fallback suffix.
func _UniqueName(base string, suffix string, used Dict[string, bool]) string {
	if !used.ContainsKey(base) {
		return base
	}
	name := base + " (" + suffix + ")"
	for i := 2; used.ContainsKey(name); i++ {
		name = base + " (" + suffix + "-" + strconv.Itoa(i) + ")"
	}
	return name
}
