// file: internals/features/school/promotions/controller/class_promotion_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"raportku_backend/internals/features/school/promotions/dto"
	"raportku_backend/internals/features/school/promotions/service"
	helper "raportku_backend/internals/helpers"
	helperAuth "raportku_backend/internals/helpers/auth"
)

type ClassPromotionController struct {
	Svc       *service.Processor
	Validator *validator.Validate
}

func NewClassPromotionController(svc *service.Processor, v *validator.Validate) *ClassPromotionController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &ClassPromotionController{Svc: svc, Validator: v}
}

/* ============================================
   SUBMIT keputusan akhir term (massal, all-or-nothing)
   POST /promotions
============================================ */

func (ctl *ClassPromotionController) Submit(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var p dto.SubmitPromotionsDTO
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.FromAppError(c, err)
	}

	rows, err := ctl.Svc.Submit(c.UserContext(), p.ToInput(caller.UserIDPtr()))
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonCreated(c, "Keputusan kenaikan kelas disimpan", dto.FromModels(rows))
}

/* ============================================
   LIST per rombel asal
   GET /promotions?class_group_id=&term_id=
============================================ */

func (ctl *ClassPromotionController) List(c *fiber.Ctx) error {
	classGroupID, err := helper.RequireUUIDQuery(c, "class_group_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	termID, err := helper.ParseUUIDQuery(c, "term_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	rows, err := ctl.Svc.ListByClassGroup(c.UserContext(), classGroupID, termID)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}
