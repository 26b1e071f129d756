package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_BR_translations "github.com/go-playground/validator/v10/translations/pt_BR"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

// jsonタグ名 -> 表示名
var fieldNameTranslations = map[string]string{
	"name":           "nome",
	"email":          "e-mail",
	"password":       "senha",
	"title":          "título",
	"description":    "descrição",
	"year":           "ano",
	"duration":       "duração",
	"poster":         "pôster",
	"genre_ids":      "gêneros",
	"start_year":     "ano de início",
	"end_year":       "ano de término",
	"series_id":      "série",
	"serie_id":       "série",
	"genero_id":      "gênero",
	"season_number":  "temporada",
	"episode_number": "número do episódio",
	"time_seconds":   "tempo (segundos)",
	"movie_id":       "filme",
	"episode_id":     "episódio",
	"genres":         "gêneros",
}

func translatedField(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	return fe.Field()
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	brazilian := pt_BR.New()
	uni := ut.New(brazilian, brazilian)
	var found bool
	Trans, found = uni.GetTranslator("pt_BR")
	if !found {
		log.Fatal("translator not found")
	}
	if err := pt_BR_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// 個別メッセージの上書き (パラメータなし)
	registerTranslation := func(tag, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, translatedField(fe))
			return t
		})
	}
	// パラメータ付き
	registerParamTranslation := func(tag, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, translatedField(fe), fe.Param())
			return t
		})
	}

	registerTranslation("required", "{0} é obrigatório.")
	registerTranslation("email", "{0} deve ser um endereço de e-mail válido.")
	registerParamTranslation("min", "{0} deve ter pelo menos {1} caracteres.")
	registerParamTranslation("max", "{0} deve ter no máximo {1} caracteres.")
	registerParamTranslation("gte", "{0} deve ser maior ou igual a {1}.")
	registerParamTranslation("lte", "{0} deve ser menor ou igual a {1}.")
	registerParamTranslation("gt", "{0} deve ser maior que {1}.")
}
