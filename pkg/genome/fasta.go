package genome

import (
	"bufio"
	"io"
	"strings"
)

// Record is one FASTA sequence.
type Record struct {
	// ID is the first word of the header, usually a versioned
	// accession.
	ID string

	// Description is the rest of the header.
	Description string

	Sequence string
}

// Accession returns ID without version.
func (r Record) Accession() string {
	return BaseAccession(r.ID)
}

// String formats the record with the sequence on one line.
func (r Record) String() string {
	var sb strings.Builder
	sb.WriteString(">")
	sb.WriteString(r.ID)
	if r.Description != "" {
		sb.WriteString(" ")
		sb.WriteString(r.Description)
	}
	sb.WriteString("\n")
	sb.WriteString(r.Sequence)
	sb.WriteString("\n")
	return sb.String()
}

// ParseFASTA reads FASTA records. Lines before the first header and
// blank lines are ignored, sequence lines are concatenated.
func ParseFASTA(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var res []Record
	var cur *Record
	var seq strings.Builder
	flush := func() {
		if cur != nil {
			cur.Sequence = seq.String()
			res = append(res, *cur)
			seq.Reset()
		}
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			id, desc, _ := strings.Cut(strings.TrimSpace(line[1:]), " ")
			cur = &Record{ID: id, Description: strings.TrimSpace(desc)}
			continue
		}
		if cur != nil {
			seq.WriteString(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return res, nil
}
