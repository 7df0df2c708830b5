package html

// CSRFFormScript injects a hidden _csrf field into POST forms from the
// CSRF cookie. Injection happens at submit time so forms rendered or
// re-enabled by the page scripts are covered too.
func CSRFFormScript() string {
	return `<script>
(function () {
  function readToken() {
    var parts = document.cookie ? document.cookie.split(";") : [];
    for (var i = 0; i < parts.length; i++) {
      var c = parts[i].trim();
      if (c.indexOf("X-CSRF-Token=") === 0) return decodeURIComponent(c.substring(13));
    }
    return "";
  }

  document.addEventListener("submit", function (ev) {
    var form = ev.target;
    if (!form || !form.getAttribute) return;
    var method = (form.getAttribute("method") || "GET").toUpperCase();
    if (method !== "POST") return;

    var token = readToken();
    if (!token) return;

    var input = form.querySelector("input[name='_csrf']");
    if (!input) {
      input = document.createElement("input");
      input.type = "hidden";
      input.name = "_csrf";
      form.appendChild(input);
    }
    input.value = token;
  }, true);
})();
</script>`
}
