package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	// Chrome
	message.SetString(lang, "app.title", "Sufni Telemetria de Suspensão")
	message.SetString(lang, "nav.sessions", "Sessões")
	message.SetString(lang, "nav.sign_in", "Entrar")
	message.SetString(lang, "nav.sign_out", "Sair")
	message.SetString(lang, "nav.signed_in_as", "Conectado como %s")
	message.SetString(lang, "nav.lang_en", "English")
	message.SetString(lang, "nav.lang_pt_br", "Português (Brasil)")

	// Session list
	message.SetString(lang, "sessions.no_description", "Sem descrição")
	message.SetString(lang, "sessions.delete", "Excluir")
	message.SetString(lang, "sessions.delete_confirm", "Excluir a sessão %s?")
	message.SetString(lang, "sessions.pick", "Selecione uma sessão da lista.")

	// Session detail
	message.SetString(lang, "session.title", "%s | Sessão")
	message.SetString(lang, "session.name", "Nome")
	message.SetString(lang, "session.description", "Descrição")
	message.SetString(lang, "session.recorded_at", "Gravada em")
	message.SetString(lang, "session.data_size", "%d bytes de dados processados")
	message.SetString(lang, "session.save", "Salvar")
	message.SetString(lang, "session.saved", "Sessão salva.")

	// Login
	message.SetString(lang, "login.title", "Entrar")
	message.SetString(lang, "login.username", "Usuário")
	message.SetString(lang, "login.password", "Senha")
	message.SetString(lang, "login.submit", "Entrar")
	message.SetString(lang, "login.invalid", "Usuário ou senha inválidos.")
	message.SetString(lang, "password.wrong", "Senha incorreta.")
	message.SetString(lang, "password.insecure", "A senha não é segura.")

	// Errors
	message.SetString(lang, "error.title", "Erro")
	message.SetString(lang, "error.not_found", "A página solicitada não foi encontrada.")
	message.SetString(lang, "error.forbidden", "Acesso completo é necessário para esta ação.")
	message.SetString(lang, "error.unavailable", "O armazenamento de sessões está indisponível.")
	message.SetString(lang, "error.internal", "Algo deu errado.")
	message.SetString(lang, "error.name_required", "O nome da sessão é obrigatório.")
}
