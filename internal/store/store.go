package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// SchemaVersion is the meeting record format written by SaveMeeting
const SchemaVersion = 1

// Store reads pipeline inputs and reads and writes meeting records under the
// configured directories.
type Store struct {
	paths model.PathsConfig
}

// New creates a store over paths
func New(paths model.PathsConfig) *Store {
	return &Store{paths: paths}
}

// Paths returns the directories the store works in
func (s *Store) Paths() model.PathsConfig {
	return s.paths
}

type meetingFile struct {
	SchemaVersion int                   `json:"schema_version"`
	Meeting       string                `json:"meeting"`
	Date          string                `json:"date"`
	Segments      []model.AgendaSegment `json:"segments"`
}

// Discover lists the meetings whose agenda file falls inside the window,
// ordered by stem. Files that do not carry a date prefix are skipped.
func (s *Store) Discover(w model.Window) ([]model.MeetingID, error) {
	return discover(s.paths.AgendaDir, ".csv", w)
}

// Recorded lists the meetings inside the window that already have a record
func (s *Store) Recorded(w model.Window) ([]model.MeetingID, error) {
	return discover(s.paths.MeetingDir, ".json", w)
}

func discover(dir, ext string, w model.Window) ([]model.MeetingID, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var ids []model.MeetingID
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		id, err := model.ParseMeetingID(e.Name())
		if err != nil {
			continue
		}
		if w.Contains(id.Date) {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b model.MeetingID) int { return strings.Compare(a.Stem, b.Stem) })
	return ids, nil
}

// MeetingPath is the record file for a meeting
func (s *Store) MeetingPath(id model.MeetingID) string {
	return filepath.Join(s.paths.MeetingDir, id.Stem+".json")
}

// LoadMeeting returns the saved record, or a fresh one built from the agenda
// file when the meeting has not been recorded yet.
func (s *Store) LoadMeeting(id model.MeetingID) (*model.Meeting, error) {
	m, err := s.ReadMeeting(id)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	agendaPath := filepath.Join(s.paths.AgendaDir, id.Stem+".csv")
	agenda, err := ReadAgenda(agendaPath)
	if err != nil {
		return nil, companionError(id, agendaPath, err)
	}
	return model.NewMeeting(id, agenda), nil
}

// ReadMeeting reads a saved meeting record. A missing record is reported with
// an error matching fs.ErrNotExist.
func (s *Store) ReadMeeting(id model.MeetingID) (*model.Meeting, error) {
	path := s.MeetingPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file meetingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if file.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("decode %s: unsupported schema_version %d", path, file.SchemaVersion)
	}
	if file.Meeting != id.Stem {
		return nil, fmt.Errorf("decode %s: record is for meeting %q", path, file.Meeting)
	}
	return &model.Meeting{ID: id, Segments: file.Segments}, nil
}

// SaveMeeting writes the meeting record atomically
func (s *Store) SaveMeeting(m *model.Meeting) error {
	segments := m.Segments
	if segments == nil {
		segments = []model.AgendaSegment{}
	}
	file := meetingFile{
		SchemaVersion: SchemaVersion,
		Meeting:       m.ID.Stem,
		Date:          m.ID.Date.Format("2006-01-02"),
		Segments:      segments,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode meeting %s: %w", m.ID.Stem, err)
	}
	return WriteFileAtomic(s.MeetingPath(m.ID), append(data, '\n'), 0o644)
}

// Legislation reads the meeting's legislation file
func (s *Store) Legislation(id model.MeetingID) ([]model.LegislationRecord, error) {
	path := filepath.Join(s.paths.LegislationDir, id.Stem+".csv")
	records, err := ReadLegislation(path)
	if err != nil {
		return nil, companionError(id, path, err)
	}
	return records, nil
}

// Transcript reads the meeting's labeled transcript passages
func (s *Store) Transcript(id model.MeetingID) ([]model.TranscriptPassage, error) {
	path := filepath.Join(s.paths.TranscriptDir, id.Stem+".csv")
	passages, err := ReadTranscript(path)
	if err != nil {
		return nil, companionError(id, path, err)
	}
	return passages, nil
}

// companionError reports unreadable companion files as *model.IOError and
// leaves format errors as they are.
func companionError(id model.MeetingID, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return &model.IOError{File: id.Stem, Path: path, Err: err}
	}
	return err
}
