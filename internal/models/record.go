// Package models defines the time-clock record type and its field vocabulary.
package models

import "time"

// Origin tells whether a punch was stamped by the system clock or typed in
// by the user.
type Origin string

const (
	OriginAutomatic Origin = "Automático"
	OriginManual    Origin = "Manual"
)

// Tag classifies a punch.
type Tag string

const (
	TagEntrada   Tag = "Entrada"
	TagSaida     Tag = "Saída"
	TagIntervalo Tag = "Intervalo"
	TagRetorno   Tag = "Retorno"
	TagOutro     Tag = "Outro"
)

// Tags lists every valid tag, in display order.
var Tags = []Tag{TagEntrada, TagSaida, TagIntervalo, TagRetorno, TagOutro}

// Valid reports whether t is one of the known tags.
func (t Tag) Valid() bool {
	for _, known := range Tags {
		if t == known {
			return true
		}
	}
	return false
}

// Field layouts for the date and wall-clock time strings.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Record is one clock-event entry. The JSON keys match the persisted file
// format, so existing collections keep round-tripping losslessly.
type Record struct {
	ID        string `json:"id"`
	User      string `json:"usuario"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Label     Origin `json:"label"`
	Tag       Tag    `json:"tag"`
	Note      string `json:"obs"`
	CreatedAt string `json:"created_at"`
}

// New builds a record with a fresh unique id and the date, wall-clock time
// and creation timestamp derived from at. Pure construction, no failure modes.
func New(owner string, at time.Time, origin Origin, tag Tag, note string) Record {
	return Record{
		ID:        NewID(),
		User:      owner,
		Date:      at.Format(DateLayout),
		Time:      at.Format(TimeLayout),
		Label:     origin,
		Tag:       tag,
		Note:      note,
		CreatedAt: at.Format(time.RFC3339),
	}
}
