// file: internals/features/school/promotions/service/processor.go
package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	promoModel "raportku_backend/internals/features/school/promotions/model"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
	"raportku_backend/internals/helpers/apperrors"
)

type Decision struct {
	StudentID      uuid.UUID
	Status         reportModel.PromotionStatus
	ToClassGroupID *uuid.UUID
	Note           *string
}

type SubmitInput struct {
	ClassGroupID uuid.UUID
	// opsional; harus sama dengan term rombel asal
	TermID    *uuid.UUID
	DecidedBy *uuid.UUID
	Decisions []Decision
}

// Processor mencatat keputusan kenaikan kelas. Tidak membuat enrollment term berikutnya.
type Processor struct {
	Repo Repository
}

func NewProcessor(repo Repository) *Processor {
	return &Processor{Repo: repo}
}

// Submit: seluruh batch divalidasi dulu; satu saja baris gagal → tidak ada yang disimpan.
func (p *Processor) Submit(ctx context.Context, in SubmitInput) ([]promoModel.ClassPromotionModel, error) {
	var out []promoModel.ClassPromotionModel
	err := p.Repo.WithTx(ctx, func(r Repository) error {
		src, err := r.FindClassGroup(ctx, in.ClassGroupID)
		if err != nil {
			return err
		}
		termID := src.ClassGroupTermID
		if in.TermID != nil && *in.TermID != termID {
			return apperrors.NewValidationError(errors.New("term tidak sesuai dengan rombel"),
				apperrors.FieldError{Field: "term_id", Error: "mismatch"})
		}

		rows, err := p.validate(ctx, r, termID, in)
		if err != nil {
			return err
		}
		if err := r.UpsertPromotions(ctx, rows); err != nil {
			return err
		}
		for _, row := range rows {
			if err := r.SyncReportCardStatus(ctx, termID, row.ClassPromotionStudentID, row.ClassPromotionStatus); err != nil {
				return err
			}
		}
		out = rows
		return nil
	})
	if err != nil {
		return nil, apperrors.WrapTx("simpan keputusan kenaikan", err)
	}
	log.Printf("[INFO] keputusan kenaikan disimpan: class_group=%s jumlah=%d", in.ClassGroupID, len(out))
	return out, nil
}

func (p *Processor) validate(ctx context.Context, r Repository, termID uuid.UUID, in SubmitInput) ([]promoModel.ClassPromotionModel, error) {
	if len(in.Decisions) == 0 {
		return nil, apperrors.NewValidationError(errors.New("validation failed"),
			apperrors.FieldError{Field: "decisions", Error: "required"})
	}

	roster, err := r.RosterSet(ctx, in.ClassGroupID, termID)
	if err != nil {
		return nil, err
	}

	var (
		fields = []apperrors.FieldError{}
		rows   = make([]promoModel.ClassPromotionModel, 0, len(in.Decisions))
		seen   = map[uuid.UUID]int{}
		// cache rombel tujuan
		dest = map[uuid.UUID]*uuid.UUID{}
	)
	bad := func(i int, field, msg string) {
		fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("decisions[%d].%s", i, field), Error: msg})
	}

	for i, d := range in.Decisions {
		if d.StudentID == uuid.Nil {
			bad(i, "student_id", "required")
		} else if !roster[d.StudentID] {
			bad(i, "student_id", "not_enrolled")
		} else if j, dup := seen[d.StudentID]; dup {
			bad(i, "student_id", fmt.Sprintf("duplicate_of_%d", j))
		} else {
			seen[d.StudentID] = i
		}

		if !d.Status.Valid() || d.Status == reportModel.PromotionPending {
			bad(i, "status", "oneof=promoted retained graduated transferred")
			continue
		}

		row := promoModel.ClassPromotionModel{
			ClassPromotionStudentID:        d.StudentID,
			ClassPromotionFromTermID:       termID,
			ClassPromotionFromClassGroupID: in.ClassGroupID,
			ClassPromotionStatus:           d.Status,
			ClassPromotionNote:             d.Note,
			ClassPromotionDecidedBy:        in.DecidedBy,
		}

		if d.Status.NeedsDestination() {
			if d.ToClassGroupID == nil || *d.ToClassGroupID == uuid.Nil {
				bad(i, "to_class_group_id", "required")
				continue
			}
			toTerm, ok := dest[*d.ToClassGroupID]
			if !ok {
				cg, err := r.FindClassGroup(ctx, *d.ToClassGroupID)
				switch {
				case errors.Is(err, apperrors.ErrNotFound):
					toTerm = nil
				case err != nil:
					return nil, err
				default:
					toTerm = &cg.ClassGroupTermID
				}
				dest[*d.ToClassGroupID] = toTerm
			}
			if toTerm == nil {
				bad(i, "to_class_group_id", "not_found")
				continue
			}
			if d.Status == reportModel.PromotionPromoted && *toTerm == termID {
				bad(i, "to_class_group_id", "same_term")
				continue
			}
			to := *d.ToClassGroupID
			row.ClassPromotionToClassGroupID = &to
			row.ClassPromotionToTermID = toTerm
		}
		rows = append(rows, row)
	}

	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(errors.New("keputusan kenaikan tidak valid"), fields...)
	}
	return rows, nil
}

// ListByClassGroup: termID nil → term rombel.
func (p *Processor) ListByClassGroup(ctx context.Context, classGroupID uuid.UUID, termID *uuid.UUID) ([]promoModel.ClassPromotionModel, error) {
	tid := uuid.Nil
	if termID != nil {
		tid = *termID
	} else {
		cg, err := p.Repo.FindClassGroup(ctx, classGroupID)
		if err != nil {
			return nil, err
		}
		tid = cg.ClassGroupTermID
	}
	return p.Repo.ListByClassGroup(ctx, classGroupID, tid)
}
