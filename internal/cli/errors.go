package cli

import (
	"errors"

	"github.com/alexanderramin/ecocafe/internal/places"
	"github.com/alexanderramin/ecocafe/internal/service"
	"github.com/alexanderramin/ecocafe/internal/survey"
)

const (
	statusSubmitting   = "제출 중..."
	statusSubmitted    = "제출되었습니다. 감사합니다!"
	statusSubmitFailed = "제출 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	statusLocating     = "현재 위치를 확인하는 중..."
	statusNoFix        = "위치 정보를 가져오지 못했습니다. 이름이나 지도 선택으로 계속할 수 있어요."
	statusReportSent   = "리포트가 접수되었습니다. 감사합니다!"
	statusSearching    = "검색 중..."
)

// UserMessage maps known errors to the Korean text shown to users. Unknown
// errors keep their own message.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrEmptyReport):
		return "내용을 입력해주세요."
	case errors.Is(err, places.ErrNoResults):
		return "검색 결과가 없습니다."
	case errors.Is(err, places.ErrSearchFailed):
		return "검색 중 오류가 발생했습니다. 다시 시도해 주세요."
	case errors.Is(err, places.ErrSearchUnavailable):
		return "장소 검색이 설정되지 않았습니다. ECOCAFE_KAKAO_REST_KEY를 확인하세요."
	case errors.Is(err, survey.ErrSubjectRequired):
		return "카페 이름을 입력하세요"
	case errors.Is(err, survey.ErrSubmitInFlight):
		return statusSubmitting
	default:
		return err.Error()
	}
}

// userError carries a user-facing message while keeping the cause
// inspectable with errors.Is.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func asUserError(err error) error {
	if err == nil {
		return nil
	}
	return &userError{msg: UserMessage(err), err: err}
}
