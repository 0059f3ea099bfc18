package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"

	classModel "raportku_backend/internals/features/school/classes/class_groups/model"
	promoModel "raportku_backend/internals/features/school/promotions/model"
	promoService "raportku_backend/internals/features/school/promotions/service"
	reportModel "raportku_backend/internals/features/school/report_cards/model"
)

type promotionRepo struct {
	s  *Store
	tx *data
}

var _ promoService.Repository = (*promotionRepo)(nil)

func (s *Store) PromotionRepo() promoService.Repository {
	return &promotionRepo{s: s}
}

func (r *promotionRepo) WithTx(ctx context.Context, fn func(promoService.Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	return r.s.tx(func(d *data) error {
		return fn(&promotionRepo{s: r.s, tx: d})
	})
}

func (r *promotionRepo) FindClassGroup(ctx context.Context, id uuid.UUID) (cg *classModel.ClassGroupModel, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		cg, err = d.classGroup(id)
		return err
	})
	return cg, err
}

func (r *promotionRepo) RosterSet(ctx context.Context, classGroupID, termID uuid.UUID) (out map[uuid.UUID]bool, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		out = d.rosterSet(classGroupID, termID)
		return nil
	})
	return out, err
}

func (r *promotionRepo) UpsertPromotions(ctx context.Context, rows []promoModel.ClassPromotionModel) error {
	return r.s.view(r.tx, func(d *data) error {
		if err := r.s.failWrite(); err != nil {
			return err
		}
		t := now()
		for i := range rows {
			row := rows[i]
			row.ClassPromotionCreatedAt = t
			for id, ex := range d.promotions {
				if ex.ClassPromotionStudentID == row.ClassPromotionStudentID && ex.ClassPromotionFromTermID == row.ClassPromotionFromTermID {
					row.ClassPromotionID = id
					row.ClassPromotionCreatedAt = ex.ClassPromotionCreatedAt
					break
				}
			}
			ensureID(&row.ClassPromotionID)
			row.ClassPromotionUpdatedAt = t
			d.promotions[row.ClassPromotionID] = row
			rows[i] = row
		}
		return nil
	})
}

func (r *promotionRepo) SyncReportCardStatus(ctx context.Context, termID, studentID uuid.UUID, status reportModel.PromotionStatus) error {
	return r.s.view(r.tx, func(d *data) error {
		if err := r.s.failWrite(); err != nil {
			return err
		}
		for id, c := range d.cards {
			if c.ReportCardTermID == termID && c.ReportCardStudentID == studentID && !c.IsLocked() {
				c.ReportCardPromotionStatus = status
				d.cards[id] = c
			}
		}
		return nil
	})
}

func (r *promotionRepo) ListByClassGroup(ctx context.Context, classGroupID, termID uuid.UUID) (out []promoModel.ClassPromotionModel, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		for _, p := range d.promotions {
			if p.ClassPromotionFromClassGroupID == classGroupID && p.ClassPromotionFromTermID == termID {
				out = append(out, p)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			return d.studentName(out[i].ClassPromotionStudentID) < d.studentName(out[j].ClassPromotionStudentID)
		})
		return nil
	})
	return out, err
}
