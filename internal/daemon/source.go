package daemon

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/horizon/internal/model"
	"github.com/theirongolddev/horizon/internal/planfile"
	"github.com/theirongolddev/horizon/internal/store"
)

// Source supplies the plan the service projects. Version returns a token that
// changes whenever the plan may have changed; Load is only called when it does.
type Source interface {
	Version() (string, error)
	Load() (model.Plan, error)
	Describe() string
}

// FileSource reads a TOML plan document.
type FileSource struct {
	Path string
}

// Version fingerprints the file by modification time and size.
func (f FileSource) Version() (string, error) {
	fp, err := planfile.Stat(f.Path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d:%d", fp.ModTime.UnixNano(), fp.Size), nil
}

// Load parses the plan file.
func (f FileSource) Load() (model.Plan, error) {
	return planfile.ReadFile(f.Path)
}

// Describe returns the file path.
func (f FileSource) Describe() string {
	return f.Path
}

// StoreSource reads a named plan from the plan store.
type StoreSource struct {
	Store *store.Store
	Name  string
}

// Version returns the stored plan's revision counter.
func (s StoreSource) Version() (string, error) {
	rev, err := s.Store.Revision(s.Name)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(rev, 10), nil
}

// Load reads the plan from the store.
func (s StoreSource) Load() (model.Plan, error) {
	return s.Store.LoadPlan(s.Name)
}

// Describe returns "store:<name>".
func (s StoreSource) Describe() string {
	return "store:" + s.Name
}
