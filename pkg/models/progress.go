package models

import "io"

// ProgressFunc receives the number of bytes read so far and the total size
// of the asset. Total is zero when the size is unknown.
type ProgressFunc func(loaded, total int64)

// progressReader reports read progress to a ProgressFunc.
type progressReader struct {
	r        io.Reader
	loaded   int64
	total    int64
	report   ProgressFunc
	lastStep int64
}

// progressSteps bounds how many reports a single load emits.
const progressSteps = 100

func newProgressReader(r io.Reader, total int64, report ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, report: report, lastStep: -1}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.loaded += int64(n)
	if p.report != nil && n > 0 {
		step := int64(0)
		if p.total > 0 {
			step = p.loaded * progressSteps / p.total
		}
		if step != p.lastStep || p.total == 0 {
			p.lastStep = step
			p.report(p.loaded, p.total)
		}
	}
	return n, err
}
