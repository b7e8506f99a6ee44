package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	workbookFileName = "dataset.xlsx"
	presignTTL       = 48 * time.Hour
)

type FileStorage interface {
	Save(ctx context.Context, fileName string, data []byte) (string, error)
}

type ObjectUploader interface {
	Upload(ctx context.Context, fileName string, data []byte, contentType string) (string, error)
	GetTemporaryURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type ExportOptions struct {
	// Seed is recorded in the run status so a dataset can be regenerated.
	Seed      uint64
	WriteXLSX bool
}

type ExportService struct {
	storage FileStorage
	s3      ObjectUploader
	status  *StatusTracker
	log     zerolog.Logger
}

// NewExportService wires the writers. s3 and status may be nil.
func NewExportService(storage FileStorage, s3 ObjectUploader, status *StatusTracker, log zerolog.Logger) *ExportService {
	return &ExportService{
		storage: storage,
		s3:      s3,
		status:  status,
		log:     log,
	}
}

type exportFile struct {
	name        string
	contentType string
	data        []byte
}

// Export writes every collection of ds to its own CSV file, in the fixed
// table order. A failed write stops the export; files already written stay.
func (s *ExportService) Export(ctx context.Context, ds Dataset, opts ExportOptions) (*ExportStatus, error) {
	status := &ExportStatus{
		Key:     fmt.Sprintf("exports:%s", uuid.NewString()),
		Type:    "credit_card_fixtures",
		Seed:    opts.Seed,
		Created: time.Now(),
	}
	s.saveStatus(ctx, status)

	tables := ds.Tables()
	var written []exportFile

	for i, t := range tables {
		data, err := encodeCSV(t)
		if err != nil {
			return s.fail(ctx, status, fmt.Errorf("encode %s: %w", t.Name, err))
		}
		f := exportFile{name: t.Name + ".csv", contentType: csvContentType, data: data}
		if err := s.write(ctx, status, f); err != nil {
			return s.fail(ctx, status, err)
		}
		written = append(written, f)

		// 100 is reserved for when every sink is done
		status.Progress = math.Min(math.Round(float64(i+1)/float64(len(tables))*90), 90)
		s.saveStatus(ctx, status)
	}

	if opts.WriteXLSX {
		data, err := encodeXLSX(tables)
		if err != nil {
			return s.fail(ctx, status, fmt.Errorf("encode workbook: %w", err))
		}
		f := exportFile{name: workbookFileName, contentType: xlsxContentType, data: data}
		if err := s.write(ctx, status, f); err != nil {
			return s.fail(ctx, status, err)
		}
		written = append(written, f)
	}

	if s.s3 != nil {
		status.Progress = 95
		s.saveStatus(ctx, status)
		for _, f := range written {
			url, err := s.publish(ctx, f)
			if err != nil {
				return s.fail(ctx, status, err)
			}
			status.FileURLs = append(status.FileURLs, url)
		}
	}

	status.Progress = 100
	s.saveStatus(ctx, status)

	s.log.Info().
		Str("export_id", status.Key).
		Strs("files", status.Files).
		Msg("export complete")

	return status, nil
}

func (s *ExportService) write(ctx context.Context, status *ExportStatus, f exportFile) error {
	path, err := s.storage.Save(ctx, f.name, f.data)
	if err != nil {
		return fmt.Errorf("save %s: %w", f.name, err)
	}
	status.Files = append(status.Files, path)
	s.log.Debug().Str("file", path).Int("bytes", len(f.data)).Msg("file written")
	return nil
}

func (s *ExportService) publish(ctx context.Context, f exportFile) (string, error) {
	key, err := s.s3.Upload(ctx, f.name, f.data, f.contentType)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", f.name, err)
	}
	url, err := s.s3.GetTemporaryURL(ctx, key, presignTTL)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", f.name, err)
	}
	s.log.Info().Str("key", key).Str("url", url).Msg("file published")
	return url, nil
}

func (s *ExportService) fail(ctx context.Context, status *ExportStatus, err error) (*ExportStatus, error) {
	errStr := err.Error()
	status.Error = &errStr
	status.Progress = 100
	s.saveStatus(ctx, status)
	s.log.Error().Err(err).Str("export_id", status.Key).Msg("export failed")
	return status, err
}

// status updates are best effort; the files are the product.
func (s *ExportService) saveStatus(ctx context.Context, status *ExportStatus) {
	if err := s.status.Save(ctx, status); err != nil {
		s.log.Warn().Err(err).Str("export_id", status.Key).Msg("status update failed")
	}
}

func encodeCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeXLSX puts each table on its own sheet, named after the table.
func encodeXLSX(tables []Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	_ = f.SetDocProps(&excelize.DocProperties{
		Creator: "cardgen",
		Title:   "Synthetic credit card dataset",
	})

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.Name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return nil, err
		}

		for colIdx, h := range t.Header {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
			if err := f.SetCellValue(t.Name, cell, h); err != nil {
				return nil, err
			}
		}
		for rowIdx, row := range t.Rows {
			for colIdx, v := range row {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				if err := f.SetCellValue(t.Name, cell, v); err != nil {
					return nil, err
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
