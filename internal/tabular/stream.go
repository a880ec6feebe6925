package tabular

import (
	"encoding/csv"
	"io"

	"github.com/dexhamter/tabload/pkg/tabload"
)

// csvRowSource streams data rows from an open delimited file. It backs the
// chunked loading path, where holding the whole file in memory a second time
// would defeat the point of chunking.
type csvRowSource struct {
	cr    *csv.Reader
	width int
	nulls map[string]struct{}
}

func (s *csvRowSource) Next() ([]tabload.Value, error) {
	record, err := s.cr.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	return shapeRow(record, s.width, s.nulls), nil
}

// openDelimitedStream positions a row source after the header row.
func openDelimitedStream(r io.Reader, opts tabload.CSVOptions) (header []string, rows tabload.RowSource, err error) {
	cr := newDelimitedReader(r, opts)

	header, err = cr.Read()
	if err != nil {
		return nil, nil, err
	}

	return header, &csvRowSource{
		cr:    cr,
		width: len(header),
		nulls: nullSet(opts),
	}, nil
}
