package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/cadenza/internal/config"
	"github.com/funvibe/cadenza/internal/diagnostics"
	"github.com/funvibe/cadenza/internal/typesystem"
)

// Plain literals have a fixed type and nothing to resolve.

type BooleanLiteral struct {
	Value bool
}

func (bl *BooleanLiteral) Accept(v Visitor)               { v.VisitBooleanLiteral(bl) }
func (bl *BooleanLiteral) expressionNode()                {}
func (bl *BooleanLiteral) String() string                 { return strconv.FormatBool(bl.Value) }
func (bl *BooleanLiteral) Copy() Node                     { return &BooleanLiteral{Value: bl.Value} }
func (bl *BooleanLiteral) ResolveNames(r *Resolver) error { return nil }

func (bl *BooleanLiteral) Equal(other Node) bool {
	o, ok := other.(*BooleanLiteral)
	return ok && o != nil && bl.Value == o.Value
}

func (bl *BooleanLiteral) TypeCheck() (typesystem.Datatype, error) {
	return typesystem.TBoolean, nil
}

type IntegerLiteral struct {
	Value int
}

func (il *IntegerLiteral) Accept(v Visitor)               { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) expressionNode()                {}
func (il *IntegerLiteral) String() string                 { return strconv.Itoa(il.Value) }
func (il *IntegerLiteral) Copy() Node                     { return &IntegerLiteral{Value: il.Value} }
func (il *IntegerLiteral) ResolveNames(r *Resolver) error { return nil }

func (il *IntegerLiteral) Equal(other Node) bool {
	o, ok := other.(*IntegerLiteral)
	return ok && o != nil && il.Value == o.Value
}

func (il *IntegerLiteral) TypeCheck() (typesystem.Datatype, error) {
	return typesystem.TInteger, nil
}

type StringLiteral struct {
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)               { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()                {}
func (sl *StringLiteral) String() string                 { return strconv.Quote(sl.Value) }
func (sl *StringLiteral) Copy() Node                     { return &StringLiteral{Value: sl.Value} }
func (sl *StringLiteral) ResolveNames(r *Resolver) error { return nil }

func (sl *StringLiteral) Equal(other Node) bool {
	o, ok := other.(*StringLiteral)
	return ok && o != nil && sl.Value == o.Value
}

func (sl *StringLiteral) TypeCheck() (typesystem.Datatype, error) {
	return typesystem.TString, nil
}

// NoteLiteral is a note value such as note(C#, 5, 8). Duration is an
// encoded numeric unit, not one of the declaration duration names.
type NoteLiteral struct {
	Pitch    string // root letter C..B, optionally followed by # or b
	Octave   int
	Duration int
}

func (nl *NoteLiteral) Accept(v Visitor)               { v.VisitNoteLiteral(nl) }
func (nl *NoteLiteral) expressionNode()                {}
func (nl *NoteLiteral) ResolveNames(r *Resolver) error { return nil }

func (nl *NoteLiteral) String() string {
	return fmt.Sprintf("note(%s, %d, %d)", nl.Pitch, nl.Octave, nl.Duration)
}

func (nl *NoteLiteral) Copy() Node {
	return &NoteLiteral{Pitch: nl.Pitch, Octave: nl.Octave, Duration: nl.Duration}
}

func (nl *NoteLiteral) Equal(other Node) bool {
	o, ok := other.(*NoteLiteral)
	return ok && o != nil && nl.Pitch == o.Pitch && nl.Octave == o.Octave && nl.Duration == o.Duration
}

func (nl *NoteLiteral) TypeCheck() (typesystem.Datatype, error) {
	if nl.Pitch == "" || !strings.ContainsRune(config.PitchRoots, rune(nl.Pitch[0])) {
		return nil, diagnostics.Errorf(diagnostics.DomainConstraint, nl, "pitch %q must start with one of %s", nl.Pitch, config.PitchRoots)
	}
	if len(nl.Pitch) > 1 {
		if alt := nl.Pitch[1]; alt != config.SharpModifier && alt != config.FlatModifier {
			return nil, diagnostics.Errorf(diagnostics.DomainConstraint, nl, "pitch %q has an invalid accidental", nl.Pitch)
		}
	}
	if nl.Octave < config.MinOctave || nl.Octave > config.MaxOctave {
		return nil, diagnostics.Errorf(diagnostics.DomainConstraint, nl,
			"octave %d is outside %d-%d", nl.Octave, config.MinOctave, config.MaxOctave)
	}
	if nl.Duration <= 0 {
		return nil, diagnostics.Errorf(diagnostics.DomainConstraint, nl, "duration must be positive, got %d", nl.Duration)
	}
	return typesystem.TNote, nil
}

// KeyLiteral is a key code such as key(Dm) or key(F#).
type KeyLiteral struct {
	Key string
}

func (kl *KeyLiteral) Accept(v Visitor)               { v.VisitKeyLiteral(kl) }
func (kl *KeyLiteral) expressionNode()                {}
func (kl *KeyLiteral) String() string                 { return "key(" + kl.Key + ")" }
func (kl *KeyLiteral) Copy() Node                     { return &KeyLiteral{Key: kl.Key} }
func (kl *KeyLiteral) ResolveNames(r *Resolver) error { return nil }

func (kl *KeyLiteral) Equal(other Node) bool {
	o, ok := other.(*KeyLiteral)
	return ok && o != nil && kl.Key == o.Key
}

func (kl *KeyLiteral) TypeCheck() (typesystem.Datatype, error) {
	if kl.Key == "" || !strings.ContainsRune(config.PitchRoots, rune(kl.Key[0])) {
		return nil, diagnostics.Errorf(diagnostics.DomainConstraint, kl, "key %q must start with one of %s", kl.Key, config.PitchRoots)
	}
	if len(kl.Key) > 1 {
		switch kl.Key[1] {
		case config.SharpModifier, config.FlatModifier, config.MinorModifier:
		default:
			return nil, diagnostics.Errorf(diagnostics.DomainConstraint, kl, "key %q has an invalid modifier", kl.Key)
		}
	}
	return typesystem.TKey, nil
}

// TempoLiteral is a tempo value in beats per minute.
type TempoLiteral struct {
	BPM int
}

func (tl *TempoLiteral) Accept(v Visitor)               { v.VisitTempoLiteral(tl) }
func (tl *TempoLiteral) expressionNode()                {}
func (tl *TempoLiteral) String() string                 { return fmt.Sprintf("tempo(%d)", tl.BPM) }
func (tl *TempoLiteral) Copy() Node                     { return &TempoLiteral{BPM: tl.BPM} }
func (tl *TempoLiteral) ResolveNames(r *Resolver) error { return nil }

func (tl *TempoLiteral) Equal(other Node) bool {
	o, ok := other.(*TempoLiteral)
	return ok && o != nil && tl.BPM == o.BPM
}

func (tl *TempoLiteral) TypeCheck() (typesystem.Datatype, error) {
	if tl.BPM < config.MinTempoBPM || tl.BPM > config.MaxTempoBPM {
		return nil, diagnostics.Errorf(diagnostics.DomainConstraint, tl,
			"tempo %d is outside %d-%d bpm", tl.BPM, config.MinTempoBPM, config.MaxTempoBPM)
	}
	return typesystem.TTempo, nil
}

// TimeSignatureLiteral is a meter value such as 7/8.
type TimeSignatureLiteral struct {
	Numerator   int
	Denominator int
}

func (tsl *TimeSignatureLiteral) Accept(v Visitor)               { v.VisitTimeSignatureLiteral(tsl) }
func (tsl *TimeSignatureLiteral) expressionNode()                {}
func (tsl *TimeSignatureLiteral) ResolveNames(r *Resolver) error { return nil }

func (tsl *TimeSignatureLiteral) String() string {
	return fmt.Sprintf("time(%d/%d)", tsl.Numerator, tsl.Denominator)
}

func (tsl *TimeSignatureLiteral) Copy() Node {
	return &TimeSignatureLiteral{Numerator: tsl.Numerator, Denominator: tsl.Denominator}
}

func (tsl *TimeSignatureLiteral) Equal(other Node) bool {
	o, ok := other.(*TimeSignatureLiteral)
	return ok && o != nil && tsl.Numerator == o.Numerator && tsl.Denominator == o.Denominator
}

func (tsl *TimeSignatureLiteral) TypeCheck() (typesystem.Datatype, error) {
	if tsl.Numerator < config.MinBeatsPerBar || tsl.Numerator > config.MaxBeatsPerBar {
		return nil, diagnostics.Errorf(diagnostics.DomainConstraint, tsl,
			"numerator %d is outside %d-%d", tsl.Numerator, config.MinBeatsPerBar, config.MaxBeatsPerBar)
	}
	if !config.IsBeatUnit(tsl.Denominator) {
		return nil, diagnostics.Errorf(diagnostics.DomainConstraint, tsl,
			"denominator %d is not one of %v", tsl.Denominator, config.BeatUnits)
	}
	return typesystem.TTimeSignature, nil
}
