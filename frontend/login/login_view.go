package login

import (
	"github.com/a-h/templ"

	"logidash/frontend/shared/html"
)

var views = html.Parse("login", `
{{define "screen"}}
<div class="login-shell">
  <div class="login-card">
    <h1>Logistics Dashboard</h1>
    <p class="muted">Sign in with your {{.AllowedDomain}} Google account.</p>
    {{if .ErrorMessage}}<div class="flash flash-error" role="alert">{{.ErrorMessage}}</div>{{end}}
    {{if .GoogleClientID}}
    <script src="https://accounts.google.com/gsi/client" async defer></script>
    <div id="g_id_onload" data-client_id="{{.GoogleClientID}}" data-callback="onGoogleCredential" data-auto_prompt="false"></div>
    <div class="g_id_signin" data-type="standard" data-shape="pill" data-theme="outline" data-text="signin_with" data-size="large"></div>
    <form id="google-login" method="post" action="/login/google">
      <input type="hidden" name="credential">
    </form>
    <script>
      function onGoogleCredential(response) {
        var form = document.getElementById("google-login");
        form.elements["credential"].value = response.credential;
        form.submit();
      }
    </script>
    {{else}}
    <p class="muted">Google sign-in is not configured.</p>
    {{end}}
    {{if .ServiceEnabled}}
    <details class="service-login">
      <summary>Service account</summary>
      <form method="post" action="/login">
        <label>Email <input type="email" name="email" value="{{.ServiceEmail}}" required></label>
        <label>Password <input type="password" name="password" autocomplete="current-password" required></label>
        <button type="submit">Sign in</button>
      </form>
    </details>
    {{end}}
  </div>
</div>
{{end}}
{{define "welcome"}}
<div class="login-shell welcome">
  <div class="login-card">
    {{if .Picture}}<img class="avatar avatar-lg" src="{{.Picture}}" alt="" referrerpolicy="no-referrer">{{end}}
    <h1>Welcome, {{.Name}}</h1>
    <p class="muted">{{.Email}}</p>
    <p>Loading your dashboard&hellip;</p>
    <a href="{{.RedirectURL}}">Continue</a>
  </div>
</div>
<script>
  setTimeout(function () { window.location.assign({{.RedirectURL}}); }, {{.DelayMillis}});
</script>
{{end}}`)

func LoginScreen(data ScreenData) templ.Component {
	return html.Bare("Sign in", html.Component(views, "screen", data))
}

func WelcomeScreen(data WelcomeData) templ.Component {
	return html.Bare("Welcome", html.Component(views, "welcome", data))
}
