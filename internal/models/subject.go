package models

import "fmt"

// Subject is one of the three learning topics.
type Subject int

const (
	Shapes Subject = iota
	Numbers
	Counting
)

// Subjects lists every subject in display order.
var Subjects = [...]Subject{Shapes, Numbers, Counting}

func (s Subject) Valid() bool {
	return s >= Shapes && s <= Counting
}

// String returns the wire key ("shapes", "numbers", "counting").
func (s Subject) String() string {
	switch s {
	case Shapes:
		return "shapes"
	case Numbers:
		return "numbers"
	case Counting:
		return "counting"
	}
	return fmt.Sprintf("subject(%d)", int(s))
}

// DisplayName is the capitalized lesson name shown in activity logs.
func (s Subject) DisplayName() string {
	switch s {
	case Shapes:
		return "Shapes"
	case Numbers:
		return "Numbers"
	case Counting:
		return "Counting"
	}
	return s.String()
}

func (s Subject) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown subject %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Subject) UnmarshalText(b []byte) error {
	v, err := ParseSubject(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSubject parses a wire key into a Subject.
func ParseSubject(v string) (Subject, error) {
	for _, s := range Subjects {
		if s.String() == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown subject %q", v)
}

// Difficulty is a tier within a subject, ordered Easy < Medium < Hard.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties lists every tier in ascending order.
var Difficulties = [...]Difficulty{Easy, Medium, Hard}

func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// Label is the capitalized form stored on activity entries ("Easy").
func (d Difficulty) Label() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	}
	return d.String()
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("unknown difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDifficulty parses "easy", "medium" or "hard".
func ParseDifficulty(v string) (Difficulty, error) {
	for _, d := range Difficulties {
		if d.String() == v {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", v)
}

// PerSubject holds one T for each subject.
type PerSubject[T any] struct {
	Shapes   T `json:"shapes"`
	Numbers  T `json:"numbers"`
	Counting T `json:"counting"`
}

func (p PerSubject[T]) At(s Subject) T {
	switch s {
	case Shapes:
		return p.Shapes
	case Numbers:
		return p.Numbers
	case Counting:
		return p.Counting
	}
	var zero T
	return zero
}

func (p *PerSubject[T]) Set(s Subject, v T) {
	switch s {
	case Shapes:
		p.Shapes = v
	case Numbers:
		p.Numbers = v
	case Counting:
		p.Counting = v
	}
}

// PerDifficulty holds one T for each tier.
type PerDifficulty[T any] struct {
	Easy   T `json:"easy"`
	Medium T `json:"medium"`
	Hard   T `json:"hard"`
}

func (p PerDifficulty[T]) At(d Difficulty) T {
	switch d {
	case Easy:
		return p.Easy
	case Medium:
		return p.Medium
	case Hard:
		return p.Hard
	}
	var zero T
	return zero
}

func (p *PerDifficulty[T]) Set(d Difficulty, v T) {
	switch d {
	case Easy:
		p.Easy = v
	case Medium:
		p.Medium = v
	case Hard:
		p.Hard = v
	}
}

// DifficultyScoreMap is the best score percentage ever reached per tier.
type DifficultyScoreMap = PerDifficulty[int]
