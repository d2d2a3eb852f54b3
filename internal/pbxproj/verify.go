package pbxproj

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	"howett.net/plist"
)

// Report summarizes a parsed project file.
type Report struct {
	RootObject string
	Objects    int
	References int
	Kinds      map[string]int
}

// Verify parses a serialized project file and checks that it is a well
// formed document: the top-level keys are present, every record has an
// isa, the root object is a PBXProject, and every identifier used as a
// value resolves to a record. Build settings are not scanned since their
// values are free-form.
func Verify(data []byte) (*Report, error) {
	var doc map[string]any
	if _, err := plist.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}

	for _, key := range []string{"archiveVersion", "classes", "objectVersion", "objects", "rootObject"} {
		if _, ok := doc[key]; !ok {
			return nil, fmt.Errorf("project file has no %s", key)
		}
	}
	objects, ok := doc["objects"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("objects is %T, not a dictionary", doc["objects"])
	}
	root, _ := doc["rootObject"].(string)

	report := &Report{RootObject: root, Objects: len(objects), Kinds: map[string]int{}}
	var result *multierror.Error

	ids := make([]string, 0, len(objects))
	for id := range objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		obj, ok := objects[id].(map[string]any)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("object %s is not a dictionary", id))
			continue
		}
		isa, _ := obj["isa"].(string)
		if isa == "" {
			result = multierror.Append(result, fmt.Errorf("object %s has no isa", id))
			continue
		}
		report.Kinds[isa]++
		if !ID(id).Valid() {
			result = multierror.Append(result, fmt.Errorf("%s has malformed identifier %s", isa, id))
		}
		for _, ref := range referencedIDs(obj) {
			report.References++
			if _, ok := objects[ref]; !ok {
				result = multierror.Append(result, fmt.Errorf("%s %s references undefined %s", isa, id, ref))
			}
		}
	}

	if rootObj, ok := objects[root].(map[string]any); !ok {
		result = multierror.Append(result, fmt.Errorf("root object %q is not defined", root))
	} else if rootObj["isa"] != ISAProject {
		result = multierror.Append(result, fmt.Errorf("root object %s is a %v, not a %s", root, rootObj["isa"], ISAProject))
	}

	return report, result.ErrorOrNil()
}

func referencedIDs(obj map[string]any) []string {
	var refs []string
	var walk func(v any)
	walk = func(v any) {
		switch val := v.(type) {
		case string:
			if ID(val).Valid() {
				refs = append(refs, val)
			}
		case []any:
			for _, item := range val {
				walk(item)
			}
		case map[string]any:
			for _, item := range val {
				walk(item)
			}
		}
	}
	for k, v := range obj {
		if k == "buildSettings" {
			continue
		}
		walk(v)
	}
	return refs
}
