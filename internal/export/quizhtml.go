package export

import (
    "html/template"
    "io"

    "github.com/hyperifyio/gostudy/internal/study"
)

// quizPage is a self-contained interactive page: selecting an option reveals
// whether it was correct plus the explanation. No external assets.
var quizTemplate = template.Must(template.New("quiz").Funcs(template.FuncMap{
    "answerIndex": study.AnswerIndex,
    "inc":         func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Quiz: {{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
.question { margin-bottom: 2rem; }
.option { display: block; margin: 0.25rem 0; cursor: pointer; }
.explanation { display: none; margin-top: 0.5rem; padding: 0.5rem; border-left: 3px solid #888; }
.correct { color: #060; font-weight: bold; }
.wrong { color: #a00; }
</style>
</head>
<body>
<h1>Quiz: {{.Title}}</h1>
{{range $qi, $q := .Quiz.Questions}}
<div class="question" data-answer="{{answerIndex $q.CorrectAnswer}}">
  <p><strong>{{inc $qi}}. {{$q.Question}}</strong></p>
  {{range $oi, $opt := $q.Options}}
  <label class="option"><input type="radio" name="q{{$qi}}" value="{{$oi}}"> {{$opt}}</label>
  {{end}}
  <div class="explanation">{{$q.Explanation}}</div>
</div>
{{end}}
<script>
document.querySelectorAll('.question').forEach(function (q) {
  var answer = parseInt(q.dataset.answer, 10);
  q.querySelectorAll('input').forEach(function (input) {
    input.addEventListener('change', function () {
      var label = input.parentElement;
      q.querySelectorAll('.option').forEach(function (o) { o.classList.remove('correct', 'wrong'); });
      label.classList.add(parseInt(input.value, 10) === answer ? 'correct' : 'wrong');
      q.querySelectorAll('.option')[answer].classList.add('correct');
      q.querySelector('.explanation').style.display = 'block';
    });
  });
});
</script>
</body>
</html>
`))

// QuizHTML renders the interactive quiz page.
func QuizHTML(w io.Writer, title string, quiz *study.Quiz) error {
    return quizTemplate.Execute(w, struct {
        Title string
        Quiz  *study.Quiz
    }{Title: title, Quiz: quiz})
}
