package html

// Names shared by the CSRF middleware and the form script. The cookie is
// readable from JS so the script can copy it into each form.
const (
	CSRFCookieName = "X-CSRF-Token"
	CSRFHeaderName = "X-CSRF-Token"
	CSRFFieldName  = "_csrf"
)

// CSRFFormScript copies the CSRF cookie into a hidden _csrf field on every
// POST form. form.submit() fires no submit event, so the Google Identity
// Services callback form relies on the field stamped at load time.
func CSRFFormScript() string {
	return `<script>
(function () {
  function csrfToken() {
    var prefix = "` + CSRFCookieName + `=";
    var parts = document.cookie ? document.cookie.split(";") : [];
    for (var i = 0; i < parts.length; i++) {
      var c = parts[i].trim();
      if (c.indexOf(prefix) === 0) return decodeURIComponent(c.substring(prefix.length));
    }
    return "";
  }

  function stamp(form, token) {
    if ((form.getAttribute("method") || "GET").toUpperCase() !== "POST") return;
    var input = form.querySelector("input[name='` + CSRFFieldName + `']");
    if (!input) {
      input = document.createElement("input");
      input.type = "hidden";
      input.name = "` + CSRFFieldName + `";
      form.appendChild(input);
    }
    input.value = token;
  }

  function stampAll() {
    var token = csrfToken();
    if (!token) return;
    document.querySelectorAll("form").forEach(function (form) { stamp(form, token); });
  }

  document.addEventListener("submit", function (e) {
    var token = csrfToken();
    if (token && e.target && e.target.tagName === "FORM") stamp(e.target, token);
  }, true);

  if (document.readyState === "loading") {
    document.addEventListener("DOMContentLoaded", stampAll);
  } else {
    stampAll();
  }
})();
</script>`
}
