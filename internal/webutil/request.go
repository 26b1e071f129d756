package webutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cinepetro_api/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// DecodeJSONBody はリクエストボディをデコードします (未知のフィールドは拒否)
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "O corpo da requisição é inválido.", "", errors.Join(model.ErrInvalidInput, err))
	}
	return nil
}

// DecodeAndValidate はデコードとバリデーションをまとめて行う。
// 返すエラーは HandleError にそのまま渡せる AppError。
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSONBody(r, dst); err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return model.NewAppError("INVALID_REQUEST_BODY", "O corpo da requisição é inválido.", "", err)
	}
	return ValidateStruct(dst)
}

// ValidateStruct は最初のバリデーションエラーを翻訳済みメッセージの AppError にする
func ValidateStruct(s interface{}) error {
	err := Validator.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return NewValidationErrorResponse(validationErrors)
	}
	return err
}

func NewValidationErrorResponse(errs validator.ValidationErrors) *model.AppError {
	first := errs[0]
	return model.NewAppError(
		"VALIDATION_ERROR",
		first.Translate(Trans),
		first.Field(),
		model.ErrInvalidInput,
	)
}

// URLParamID はパスパラメータを正の整数IDとして取り出す
func URLParamID(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, model.NewAppError("INVALID_URL_PARAM", name+" inválido.", name, model.ErrInvalidInput)
	}
	return uint(id), nil
}

// QueryOptionalID は任意のクエリパラメータを *uint として取り出す。空なら nil。
func QueryOptionalID(r *http.Request, name string) (*uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, model.NewAppError("INVALID_QUERY_PARAM", name+" inválido.", name, model.ErrInvalidInput)
	}
	v := uint(id)
	return &v, nil
}
