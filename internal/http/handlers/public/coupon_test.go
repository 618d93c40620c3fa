package public

import (
	"net/http/httptest"
	"testing"

	"github.com/bazaar-next/internal/constants"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/service"

	"github.com/gin-gonic/gin"
)

func newCouponPayloadTestContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/v1/coupons/validate", nil)
	return c
}

func TestBuildCouponValidationPayloadSuccess(t *testing.T) {
	c := newCouponPayloadTestContext(t)
	payload := buildCouponValidationPayload(c, &service.CouponValidation{
		Valid:       true,
		Discount:    models.NewMoneyFromInt(200),
		FinalAmount: models.NewMoneyFromInt(800),
		Coupon: &models.Coupon{
			Code:        "SAVE20",
			Type:        constants.CouponTypePercent,
			Value:       models.NewMoneyFromInt(20),
			MaxDiscount: models.NewMoneyFromInt(300),
			Description: "festive",
		},
	})

	if payload["valid"] != true {
		t.Fatalf("expected valid payload, got %+v", payload)
	}
	message, ok := payload["message"].(string)
	if !ok || message == "" {
		t.Fatalf("expected success message, got %+v", payload["message"])
	}

	coupon, ok := payload["coupon"].(gin.H)
	if !ok {
		t.Fatalf("expected coupon object, got %+v", payload["coupon"])
	}
	maxDiscount, ok := coupon["max_discount"].(models.Money)
	if !ok {
		t.Fatalf("expected max_discount in coupon, got %+v", coupon)
	}
	if !maxDiscount.Decimal.Equal(models.NewMoneyFromInt(300).Decimal) {
		t.Fatalf("expected max_discount 300, got %s", maxDiscount.String())
	}
}

func TestBuildCouponValidationPayloadRejection(t *testing.T) {
	c := newCouponPayloadTestContext(t)
	payload := buildCouponValidationPayload(c, &service.CouponValidation{
		Valid:       false,
		MessageKey:  "error.coupon_expired",
		FinalAmount: models.NewMoneyFromInt(100),
	})

	if payload["valid"] != false {
		t.Fatalf("expected rejection payload, got %+v", payload)
	}
	message, ok := payload["message"].(string)
	if !ok || message == "" {
		t.Fatalf("expected rejection message, got %+v", payload["message"])
	}
	if _, present := payload["coupon"]; present {
		t.Fatalf("expected no coupon object on rejection")
	}
}
