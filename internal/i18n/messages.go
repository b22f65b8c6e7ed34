package i18n

import (
	"golang.org/x/text/language"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		shared.MsgValidationTitle:   "Validation Error!",
		shared.MsgAlreadyExists:     "Already Exists!",
		shared.MsgUnknownError:      "Unknown Error!",
		shared.MsgFieldRequired:     "%s field must be filled",
		shared.MsgFieldType:         "%s field must be type %s",
		shared.MsgNeedPermissions:   "Permission required: %s",
		shared.MsgUnauthorized:      "Unauthorized",
		shared.MsgInvalidToken:      "Token is invalid or expired",
		shared.MsgNotFound:          "Not Found",
		shared.MsgNotFoundID:        "No %s found with _id: %v",
		shared.MsgPartialApply:      "Partial Update!",
		shared.MsgPartialApplyDesc:  "Some entries were removed but new ones could not be added",
		shared.MsgTooManyRequests:   "Too many requests, slow down",
		shared.MsgAuthError:         "Email or password wrong",
		shared.MsgEmailFormat:       "email field must be an email format",
		shared.MsgPasswordPolicy:    "password length must be at least %d and mix upper, lower, digit and symbol",
		shared.MsgPhoneLength:       "phone number length must be %d",
		shared.MsgRegistrationClose: "Registration is closed",
		shared.MsgUnknownRoles:      "unknown roles: %v",
		shared.MsgUnknownPermission: "unknown permission: %s",
		shared.MsgEmptyPermissions:  "permissions field must contain at least one permission",
	},
	language.Norwegian: {
		shared.MsgValidationTitle:   "Valideringsfeil",
		shared.MsgAlreadyExists:     "Allerede eksisterer!",
		shared.MsgUnknownError:      "Ukjent feil!",
		shared.MsgFieldRequired:     "%s feltet må fylles ut",
		shared.MsgFieldType:         "%s feltet må være av typen %s",
		shared.MsgNeedPermissions:   "Tillatelse kreves: %s",
		shared.MsgUnauthorized:      "Ikke autorisert",
		shared.MsgInvalidToken:      "Token er ugyldig eller utløpt",
		shared.MsgNotFound:          "Ikke funnet",
		shared.MsgNotFoundID:        "Ingen %s funnet med _id: %v",
		shared.MsgAuthError:         "E-post eller passord er feil",
		shared.MsgEmailFormat:       "e-post feltet må være i riktig e-postformat",
		shared.MsgPasswordPolicy:    "passordlengde må være minst %d",
		shared.MsgPhoneLength:       "telefonnummerlengde må være %d",
		shared.MsgRegistrationClose: "Registrering er stengt",
	},
	language.Turkish: {
		shared.MsgValidationTitle: "Doğrulama Hatası!",
		shared.MsgAlreadyExists:   "Zaten mevcut!",
		shared.MsgUnknownError:    "Bilinmeyen Hata!",
		shared.MsgFieldRequired:   "%s alanı doldurulmalıdır",
		shared.MsgFieldType:       "%s alanı %s tipinde olmalıdır",
		shared.MsgNeedPermissions: "Yetki gerekli: %s",
		shared.MsgUnauthorized:    "Yetkisiz",
		shared.MsgAuthError:       "E-posta veya şifre hatalı",
		shared.MsgEmailFormat:     "e-posta alanı geçerli formatta olmalıdır",
		shared.MsgPasswordPolicy:  "şifre uzunluğu en az %d olmalıdır",
		shared.MsgPhoneLength:     "telefon numarası uzunluğu %d olmalıdır",
	},
}
