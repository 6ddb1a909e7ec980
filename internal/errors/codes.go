package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 세션 (SESSION_) ====================
	SessionInvalid = "SESSION_INVALID" // 세션 토큰 오류

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationRequired     = "VALIDATION_REQUIRED"      // 필수 항목 누락
	ValidationEmptyMessage = "VALIDATION_EMPTY_MESSAGE" // 빈 메시지

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 상품 (PRODUCT_) ====================
	ProductNotFound        = "PRODUCT_NOT_FOUND"        // 상품 없음
	ProductInvalidCategory = "PRODUCT_INVALID_CATEGORY" // 잘못된 카테고리

	// ==================== 장바구니/주문 (CART_, CHECKOUT_) ====================
	CartEmpty              = "CART_EMPTY"               // 장바구니 비어 있음
	CheckoutNotOpen        = "CHECKOUT_NOT_OPEN"        // 주문서 없음
	CheckoutInvalidStep    = "CHECKOUT_INVALID_STEP"    // 현재 단계에서 불가
	CheckoutInvalidPayment = "CHECKOUT_INVALID_PAYMENT" // 잘못된 결제 수단
	CheckoutPaymentFailed  = "CHECKOUT_PAYMENT_FAILED"  // 결제 실패

	// ==================== 화면 (VIEW_) ====================
	ViewUnknownEvent = "VIEW_UNKNOWN_EVENT" // 알 수 없는 화면 이벤트

	// ==================== AI (AI_) ====================
	AIDisabled         = "AI_DISABLED"          // AI 기능 비활성화
	AIGenerationFailed = "AI_GENERATION_FAILED" // AI 생성 실패

	// ==================== 요청 (REQUEST_) ====================
	RequestInFlight = "REQUEST_IN_FLIGHT" // 이전 요청 처리 중

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // 외부 API 오류
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // 설정 오류
)
