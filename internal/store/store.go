package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/radar/internal/radar"
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrInvalidName      = errors.New("invalid snapshot name")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Entry is a saved chart state.
type Entry struct {
	Name      string         `json:"name"`
	Timestamp time.Time      `json:"timestamp"`
	Snapshot  radar.Snapshot `json:"snapshot"`
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Save writes snap under name, replacing any earlier entry. Alongside the
// snapshot a data.csv holds the name/value table for other tools.
func (s *Store) Save(name string, snap radar.Snapshot) (*Entry, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	dir := filepath.Join(s.baseDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	entry := &Entry{Name: name, Timestamp: time.Now(), Snapshot: snap}

	snapFile, err := os.Create(filepath.Join(dir, "snapshot.json"))
	if err != nil {
		return nil, err
	}
	defer snapFile.Close()
	if err := WriteJSON(snapFile, entry); err != nil {
		return nil, err
	}

	csvFile, err := os.Create(filepath.Join(dir, "data.csv"))
	if err != nil {
		return nil, err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"name", "value"}); err != nil {
		return nil, err
	}
	for _, p := range snap.Data {
		if err := w.Write([]string{p.Name, strconv.Itoa(p.Value)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns saved entries, most recent first. Unreadable entries are
// skipped.
func (s *Store) List() ([]Entry, error) {
	dirs, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	entries := make([]Entry, 0)
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		e, err := s.Load(d.Name())
		if err != nil {
			continue
		}
		entries = append(entries, *e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}

func (s *Store) Load(name string) (*Entry, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, name, "snapshot.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
		}
		return nil, err
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &e, nil
}

// LoadData reads the name/value table saved next to a snapshot.
func (s *Store) LoadData(name string) ([]radar.DataPoint, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.baseDir, name, "data.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 2
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	data := make([]radar.DataPoint, 0, len(records))
	for i, record := range records {
		if i == 0 {
			continue
		}
		v, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		data = append(data, radar.DataPoint{Name: record[0], Value: v})
	}
	return data, nil
}

func (s *Store) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	dir := filepath.Join(s.baseDir, name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	return os.RemoveAll(dir)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
