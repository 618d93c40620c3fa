package i18n

// catalogs 文案目录；en 为兜底语言
var catalogs = map[string]map[string]string{
	LocaleEN: {
		"success": "success",

		"error.bad_request":         "Invalid request",
		"error.internal":            "Something went wrong, please try again later",
		"error.unauthorized":        "Unauthorized",
		"error.forbidden":           "Permission denied",
		"error.auth_header_missing": "Authorization header is missing",
		"error.auth_header_invalid": "Authorization header is invalid",
		"error.token_invalid":       "Invalid or expired token",
		"error.token_revoked":       "Token has been revoked, please log in again",
		"error.jwt_secret_missing":  "Server auth is not configured",
		"error.rate_limited":        "Too many requests, please retry in %d second(s)",
		"error.login_too_many":      "Too many login attempts, please retry in %d second(s)",
		"error.rate_limit_unavailable": "Service busy, please try again later",

		"error.invalid_credentials":      "Invalid email or password",
		"error.user_exists":              "An account with this email already exists",
		"error.user_not_found":           "User not found",
		"error.user_disabled":            "This account has been disabled",
		"error.email_invalid":            "Invalid email address",
		"error.register_failed":          "Registration failed, please try again",
		"error.login_failed":             "Login failed, please try again",
		"error.user_fetch_failed":        "Unable to load account, please try again",
		"error.user_update_failed":       "Unable to update account, please try again",
		"error.save_failed":              "Save failed, please try again",
		"error.password_weak":            "Password does not meet the security policy",
		"error.password_old_invalid":     "Current password is incorrect",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a number",
		"error.user_id_invalid":          "User identity is missing",
		"error.user_id_type_invalid":     "User identity is invalid",
		"error.admin_id_invalid":         "Admin identity is missing",
		"error.admin_id_type_invalid":    "Admin identity is invalid",

		"error.captcha_required":        "Captcha is required",
		"error.captcha_invalid":         "Captcha verification failed",
		"error.captcha_unavailable":     "Captcha service unavailable",
		"error.captcha_generate_failed": "Unable to generate captcha, please try again",
		"error.captcha_verify_failed":   "Unable to verify captcha, please try again",

		"coupon.applied":              "Coupon applied successfully.",
		"error.coupon_invalid":        "Invalid coupon code.",
		"error.coupon_not_started":    "This coupon is not active yet.",
		"error.coupon_expired":        "This coupon has expired.",
		"error.coupon_usage_limit":    "This coupon has reached its usage limit.",
		"error.coupon_per_user_limit": "You have already used this coupon %d time(s).",
		"error.coupon_min_amount":     "Minimum order amount is ₹%s.",
		"error.coupon_fetch_failed":   "Unable to validate coupon, please try again",
		"error.coupon_exists":         "A coupon with this code already exists",
		"error.coupon_not_found":      "Coupon not found",
		"error.coupon_create_failed":  "Unable to create coupon, please try again",
		"error.coupon_update_failed":  "Unable to update coupon, please try again",
		"error.coupon_delete_failed":  "Unable to delete coupon, please try again",
		"error.coupon_redeem_failed":  "Unable to record coupon redemption, please try again",
		"error.coupon_release_failed": "Unable to release coupon redemption, please try again",

		"error.coupon_per_user_limit_reached": "Per-user limit reached for this coupon",
		"error.coupon_usage_limit_reached":    "This coupon has reached its usage limit",

		"error.wallet_insufficient_balance": "Insufficient wallet balance",
		"error.wallet_invalid_amount":       "Amount must be greater than zero",
		"error.wallet_fetch_failed":         "Unable to load wallet, please try again",
		"error.wallet_update_failed":        "Wallet update failed, please try again",

		"error.gift_card_code_format": "Invalid gift card code format",
		"error.gift_card_redeemed":    "Gift card already redeemed",
		"error.gift_card_failed":      "Gift card redemption failed, please try again",

		"error.authz_fetch_failed": "Unable to load permissions, please try again",
		"error.queue_unavailable":  "Task queue unavailable, please try again later",
	},
	LocaleHI: {
		"error.coupon_invalid":        "अमान्य कूपन कोड।",
		"error.coupon_not_started":    "यह कूपन अभी सक्रिय नहीं है।",
		"error.coupon_expired":        "यह कूपन समाप्त हो चुका है।",
		"error.coupon_usage_limit":    "इस कूपन की उपयोग सीमा समाप्त हो गई है।",
		"error.coupon_per_user_limit": "आप इस कूपन का %d बार उपयोग कर चुके हैं।",
		"error.coupon_min_amount":     "न्यूनतम ऑर्डर राशि ₹%s है।",
		"coupon.applied":              "कूपन सफलतापूर्वक लागू हुआ।",

		"error.email_invalid":        "अमान्य ईमेल पता",
		"error.password_old_invalid": "वर्तमान पासवर्ड गलत है",

		"error.wallet_insufficient_balance": "वॉलेट में पर्याप्त शेष राशि नहीं है",
		"error.gift_card_code_format":       "अमान्य गिफ्ट कार्ड कोड प्रारूप",
		"error.gift_card_redeemed":          "गिफ्ट कार्ड पहले ही भुनाया जा चुका है",
	},
}
