package inmem

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	attendanceModel "raportku_backend/internals/features/school/attendance/model"
	attendanceService "raportku_backend/internals/features/school/attendance/service"
	taModel "raportku_backend/internals/features/school/classes/teaching_assignments/model"
	"raportku_backend/internals/helpers/apperrors"
)

type attendanceRepo struct {
	s  *Store
	tx *data
}

var _ attendanceService.Repository = (*attendanceRepo)(nil)

func (s *Store) AttendanceRepo() attendanceService.Repository {
	return &attendanceRepo{s: s}
}

func (r *attendanceRepo) WithTx(ctx context.Context, fn func(attendanceService.Repository) error) error {
	if r.tx != nil {
		return fn(r)
	}
	return r.s.tx(func(d *data) error {
		return fn(&attendanceRepo{s: r.s, tx: d})
	})
}

func (r *attendanceRepo) ActiveTermID(ctx context.Context) (id uuid.UUID, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		id, err = d.activeTermID()
		return err
	})
	return id, err
}

func (r *attendanceRepo) FindAssignment(ctx context.Context, id uuid.UUID) (out *taModel.TeachingAssignmentModel, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		out, err = d.assignment(id)
		return err
	})
	return out, err
}

func (r *attendanceRepo) RosterStudentIDs(ctx context.Context, classGroupID, termID uuid.UUID) (out []uuid.UUID, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		for _, e := range d.roster(classGroupID, termID) {
			out = append(out, e.ClassEnrollmentStudentID)
		}
		return nil
	})
	return out, err
}

func (r *attendanceRepo) EnsureSession(ctx context.Context, s *attendanceModel.AttendanceSessionModel) error {
	return r.s.view(r.tx, func(d *data) error {
		for _, ex := range d.sessions {
			if ex.AttendanceSessionTeachingAssignmentID == s.AttendanceSessionTeachingAssignmentID &&
				ex.AttendanceSessionDate.Equal(s.AttendanceSessionDate) {
				*s = ex
				return nil
			}
		}
		if err := r.s.failWrite(); err != nil {
			return err
		}
		ensureID(&s.AttendanceSessionID)
		s.AttendanceSessionCreatedAt = now()
		s.AttendanceSessionUpdatedAt = s.AttendanceSessionCreatedAt
		d.sessions[s.AttendanceSessionID] = *s
		return nil
	})
}

func (r *attendanceRepo) FindSession(ctx context.Context, id uuid.UUID) (out *attendanceModel.AttendanceSessionModel, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		s, ok := d.sessions[id]
		if !ok {
			return errors.Wrap(apperrors.ErrNotFound, "sesi absensi")
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *attendanceRepo) SeedRecords(ctx context.Context, sessionID uuid.UUID, studentIDs []uuid.UUID) error {
	return r.s.view(r.tx, func(d *data) error {
		if err := r.s.failWrite(); err != nil {
			return err
		}
		have := map[uuid.UUID]bool{}
		for _, rec := range d.records {
			if rec.AttendanceRecordSessionID == sessionID {
				have[rec.AttendanceRecordStudentID] = true
			}
		}
		t := now()
		for _, sid := range studentIDs {
			if have[sid] {
				continue
			}
			rec := attendanceModel.AttendanceRecordModel{
				AttendanceRecordID:        uuid.New(),
				AttendanceRecordSessionID: sessionID,
				AttendanceRecordStudentID: sid,
				AttendanceRecordStatus:    attendanceModel.AttendanceUnmarked,
				AttendanceRecordCreatedAt: t,
				AttendanceRecordUpdatedAt: t,
			}
			d.records[rec.AttendanceRecordID] = rec
			have[sid] = true
		}
		return nil
	})
}

func (r *attendanceRepo) ListRecords(ctx context.Context, sessionID uuid.UUID) (out []attendanceModel.AttendanceRecordModel, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		for _, rec := range d.records {
			if rec.AttendanceRecordSessionID == sessionID {
				out = append(out, rec)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			return d.studentName(out[i].AttendanceRecordStudentID) < d.studentName(out[j].AttendanceRecordStudentID)
		})
		return nil
	})
	return out, err
}

func (r *attendanceRepo) UpdateRecords(ctx context.Context, rows []attendanceModel.AttendanceRecordModel) error {
	return r.s.view(r.tx, func(d *data) error {
		t := now()
		for i, row := range rows {
			if err := r.s.failWrite(); err != nil && i > 0 {
				return err
			}
			ex, ok := d.records[row.AttendanceRecordID]
			if !ok {
				return errors.Wrap(apperrors.ErrNotFound, "record absensi")
			}
			ex.AttendanceRecordStatus = row.AttendanceRecordStatus
			ex.AttendanceRecordNote = row.AttendanceRecordNote
			ex.AttendanceRecordUpdatedAt = t
			d.records[row.AttendanceRecordID] = ex
		}
		return r.s.failWrite()
	})
}

func (r *attendanceRepo) StudentStatuses(ctx context.Context, studentID, termID uuid.UUID) (out []attendanceModel.AttendanceStatus, err error) {
	err = r.s.view(r.tx, func(d *data) error {
		for _, rec := range d.records {
			if rec.AttendanceRecordStudentID != studentID {
				continue
			}
			sess, ok := d.sessions[rec.AttendanceRecordSessionID]
			if !ok {
				continue
			}
			ta, ok := d.assignments[sess.AttendanceSessionTeachingAssignmentID]
			if ok && ta.TeachingAssignmentTermID == termID {
				out = append(out, rec.AttendanceRecordStatus)
			}
		}
		return nil
	})
	return out, err
}
