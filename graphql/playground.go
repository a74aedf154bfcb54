package graphql

import (
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var playgroundTemplate = template.Must(template.New("playground").Parse(`<!DOCTYPE html>
<html>

<head>
  <meta charset=utf-8/>
  <meta name="viewport" content="user-scalable=no, initial-scale=1.0, minimum-scale=1.0, maximum-scale=1.0, minimal-ui">
  <title>Table Admin Playground</title>
  <link rel="stylesheet" href="//cdn.jsdelivr.net/npm/graphql-playground-react@1.7.20/build/static/css/index.css" />
  <link rel="shortcut icon" href="//cdn.jsdelivr.net/npm/graphql-playground-react@1.7.20/build/favicon.png" />
  <script src="//cdn.jsdelivr.net/npm/graphql-playground-react@1.7.20/build/static/js/middleware.js"></script>
</head>

<body>
  <div id="root"></div>
  <script>window.addEventListener('load', function (event) {
      GraphQLPlayground.init(document.getElementById('root'), {
        endpoint: {{.Endpoint}},
        settings: {'request.credentials': 'same-origin'}
      })
    })</script>
</body>

</html>
`))

// GetPlaygroundHandle serves a GraphQL playground pointed at endpointURL.
func GetPlaygroundHandle(endpointURL string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := playgroundTemplate.Execute(w, struct{ Endpoint string }{endpointURL}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
