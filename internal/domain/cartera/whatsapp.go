package cartera

import (
	"net/url"
	"strings"
)

const mensajeCobro = "Hola %s 👋, te saludamos de ALIANZANET. 🛰️\n\n" +
	"Te informamos que no hemos registrado tu pago del mes actual. 💳\n\n" +
	"Por favor, envíanos el soporte de pago para evitar interrupciones en tu servicio. ¡Gracias! ✨"

// MakeWhatsAppLink construye el enlace wa.me de cobro para un número local.
// Aplica los prefijos internacionales de la zona de operación (frontera
// Colombia/Ecuador): celulares colombianos de 10 dígitos que empiezan por 3
// reciben el prefijo 57; los ecuatorianos que empiezan por 09 o 9 reciben 593.
// Devuelve cadena vacía si no hay número.
func MakeWhatsAppLink(numero, nombre string) string {
	digitos := soloDigitos(numero)
	if digitos == "" {
		return ""
	}
	switch {
	case len(digitos) == 10 && strings.HasPrefix(digitos, "3"):
		digitos = "57" + digitos
	case len(digitos) == 10 && strings.HasPrefix(digitos, "09"):
		digitos = "593" + digitos[1:]
	case len(digitos) == 10 && strings.HasPrefix(digitos, "9"):
		digitos = "593" + digitos
	case len(digitos) == 9 && strings.HasPrefix(digitos, "9"):
		digitos = "593" + digitos
	}
	msg := strings.Replace(mensajeCobro, "%s", strings.ToUpper(nombre), 1)
	return "https://wa.me/" + digitos + "?text=" + url.QueryEscape(msg)
}

func soloDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
