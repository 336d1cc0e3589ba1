package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"quizbot/internal/domain"
	"quizbot/internal/dto"
	"quizbot/internal/util"
)

const (
	quizzesPerPage   = 5
	questionsPerPage = 10
	copyTargetsPage  = 5
)

func homeReply(chatID int64, text string) dto.Reply {
	return dto.NewReply(chatID, text).WithButtons([]dto.Button{
		{Label: "📂 Quiz Folder", Tag: tagHomeQuizzes},
		{Label: "➕ Create a new Quiz", Tag: tagHomeCreate},
	})
}

// foldersMenu lists the owner's folders with quiz counts, the reserved
// Default folder pinned on top and the rest alphabetical.
func (s *ConversationService) foldersMenu(ctx context.Context, chatID int64) (dto.Reply, error) {
	names, err := s.folderRepo.ListFolders(ctx, s.ownerID)
	if err != nil {
		return dto.Reply{}, err
	}

	var others []string
	for _, name := range names {
		if !domain.IsReservedFolder(name) {
			others = append(others, name)
		}
	}
	sort.Strings(others)

	var rows [][]dto.Button
	count, err := s.quizRepo.CountQuizzesInFolder(ctx, s.ownerID, domain.DefaultFolderName)
	if err != nil {
		return dto.Reply{}, err
	}
	rows = append(rows, []dto.Button{{
		Label: fmt.Sprintf("📁 Default Folder (%d)", count),
		Tag:   tagOpenFolderPrefix + domain.DefaultFolderName,
	}})

	for _, name := range others {
		count, err := s.quizRepo.CountQuizzesInFolder(ctx, s.ownerID, name)
		if err != nil {
			return dto.Reply{}, err
		}
		rows = append(rows, []dto.Button{{
			Label: fmt.Sprintf("📁 %s (%d)", name, count),
			Tag:   tagOpenFolderPrefix + name,
		}})
	}

	rows = append(rows, []dto.Button{
		{Label: "➕ Add Folder", Tag: tagAddFolder},
		{Label: "🏠 Home", Tag: tagGoHome},
	})

	return dto.NewReply(chatID, "📂 Your quiz folders:").WithButtons(rows...), nil
}

// folderContents is one page of a folder's quizzes plus nav and folder
// actions. The Default folder can be neither renamed nor deleted, so it
// only carries the back button.
func (s *ConversationService) folderContents(ctx context.Context, st *domain.ConversationState, chatID int64, folder string) (dto.Reply, error) {
	quizzes, err := s.quizRepo.ListQuizzesByFolder(ctx, s.ownerID, folder)
	if err != nil {
		return dto.Reply{}, err
	}

	p := util.Paginate(len(quizzes), quizzesPerPage, st.FolderPages[folder])
	st.FolderPages[folder] = p.Page

	var rows [][]dto.Button
	for _, quiz := range quizzes[p.Start:p.End] {
		rows = append(rows, []dto.Button{{
			Label: "📘 " + quiz.Title,
			Tag:   tagQuizPrefix + quiz.ID,
		}})
	}

	if p.TotalPages > 1 {
		var nav []dto.Button
		if p.Page > 0 {
			nav = append(nav, dto.Button{Label: "◀ Prev", Tag: tagFolderPrevPrefix + folder})
		}
		nav = append(nav, dto.Button{
			Label: fmt.Sprintf("%d/%d", p.Page+1, p.TotalPages),
			Tag:   tagFolderNop,
		})
		if p.Page < p.TotalPages-1 {
			nav = append(nav, dto.Button{Label: "Next ▶", Tag: tagFolderNextPrefix + folder})
		}
		rows = append(rows, nav)
	}

	if domain.IsReservedFolder(folder) {
		rows = append(rows, []dto.Button{{Label: "⬅️ Back", Tag: tagBackFolders}})
	} else {
		rows = append(rows, []dto.Button{
			{Label: "✏️ Rename Folder", Tag: tagRenameFolderPrefix + folder},
			{Label: "🗑 Delete Folder", Tag: tagDeleteFolderPrefix + folder},
			{Label: "⬅️ Back", Tag: tagBackFolders},
		})
	}

	title := folder
	if domain.IsReservedFolder(folder) {
		title = "All Quizzes"
	}
	return dto.NewReply(chatID, "📁 "+title).WithButtons(rows...), nil
}

func quizSummary(quiz *domain.Quiz, questionCount int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📘 **%s**", quiz.Title)
	if quiz.Description != "" {
		fmt.Fprintf(&sb, "\n\n_%s_", quiz.Description)
	}
	fmt.Fprintf(&sb, "\n\n📊 Questions: %d", questionCount)
	fmt.Fprintf(&sb, "\n⏱ Timer: %ds", quiz.TimerSeconds)
	fmt.Fprintf(&sb, "\n🔀 Shuffle Questions: %s", onOff(quiz.ShuffleQuestion))
	fmt.Fprintf(&sb, "\n🔀 Shuffle Options: %s", onOff(quiz.ShuffleOptions))
	return sb.String()
}

func (s *ConversationService) quizActionMenu(ctx context.Context, st *domain.ConversationState, chatID int64) (dto.Reply, error) {
	quiz, err := s.activeQuiz(ctx, st)
	if err != nil {
		return dto.Reply{}, err
	}
	count, err := s.questionRepo.CountQuestions(ctx, quiz.ID)
	if err != nil {
		return dto.Reply{}, err
	}

	reply := dto.Reply{ChatID: chatID, Text: quizSummary(quiz, count), Markdown: true}
	return reply.WithButtons(
		[]dto.Button{
			{Label: "▶️ Start this Quiz", Tag: tagStartThis},
			{Label: "📤 Post this Quiz", Tag: tagPostQuiz},
		},
		[]dto.Button{
			{Label: "✏️ Edit this Quiz", Tag: tagEditThis},
			{Label: "📁 Move this Quiz", Tag: tagMoveQuiz},
		},
		[]dto.Button{
			{Label: "🗑 Delete this Quiz", Tag: tagDeleteQuiz},
			{Label: "⬅️ Back", Tag: tagBackQuizzes},
		},
	), nil
}

func (s *ConversationService) editMenu(ctx context.Context, st *domain.ConversationState, chatID int64) (dto.Reply, error) {
	quiz, err := s.activeQuiz(ctx, st)
	if err != nil {
		return dto.Reply{}, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📘 **%s**", quiz.Title)
	if quiz.Description != "" {
		fmt.Fprintf(&sb, "\n\n_%s_", quiz.Description)
	}
	fmt.Fprintf(&sb, "\n\n⏱ Timer: %ds", quiz.TimerSeconds)
	fmt.Fprintf(&sb, "\n🔀 Shuffle Questions: %s", onOff(quiz.ShuffleQuestion))
	fmt.Fprintf(&sb, "\n🔀 Shuffle Options: %s", onOff(quiz.ShuffleOptions))

	reply := dto.Reply{ChatID: chatID, Text: sb.String(), Markdown: true}
	return reply.WithButtons(
		[]dto.Button{
			{Label: "📝 Edit Title", Tag: tagEditTitle},
			{Label: "🧾 Edit Description", Tag: tagEditDesc},
		},
		[]dto.Button{
			{Label: "⏱ Timer Settings", Tag: tagEditTimer},
			{Label: "🔀 Shuffle Settings", Tag: tagEditShuffle},
		},
		[]dto.Button{
			{Label: "❓ Show Questions", Tag: tagEditQuestions},
			{Label: "⬅️ Back", Tag: tagBackAction},
		},
	), nil
}

// questionList is one page of the quiz's questions, ordered the way the
// storage layer lists them, with truncated button labels.
func (s *ConversationService) questionList(ctx context.Context, st *domain.ConversationState, chatID int64) (dto.Reply, error) {
	if st.ActiveQuizID == "" {
		return dto.Reply{}, domain.NewNoActiveTargetError("quiz")
	}
	questions, err := s.questionRepo.ListQuestions(ctx, st.ActiveQuizID)
	if err != nil {
		return dto.Reply{}, err
	}

	p := util.Paginate(len(questions), questionsPerPage, st.QuestionPage)
	st.QuestionPage = p.Page

	rows := [][]dto.Button{
		{{Label: "➕ Add new question", Tag: tagAddQuestion}},
	}
	for i, q := range questions[p.Start:p.End] {
		// Truncate on runes so a multibyte character is never cut in half.
		label := q.Text
		if r := []rune(label); len(r) > 40 {
			label = string(r[:40])
		}
		rows = append(rows, []dto.Button{{
			Label: fmt.Sprintf("%d. %s", p.Start+i+1, label),
			Tag:   fmt.Sprintf("%s%d", tagQuestionPrefix, q.ID),
		}})
	}

	if p.TotalPages > 1 {
		var nav []dto.Button
		if p.Page > 0 {
			nav = append(nav, dto.Button{Label: "◀️ Prev", Tag: tagQuestionPagePrev})
		}
		nav = append(nav, dto.Button{
			Label: fmt.Sprintf("%d/%d", p.Page+1, p.TotalPages),
			Tag:   tagQuestionPageNop,
		})
		if p.Page < p.TotalPages-1 {
			nav = append(nav, dto.Button{Label: "Next ▶️", Tag: tagQuestionPageNext})
		}
		rows = append(rows, nav)
	}

	rows = append(rows, []dto.Button{{Label: "⬅️ Back", Tag: tagEditThis}})

	return dto.NewReply(chatID, "❓ Questions in this quiz:").WithButtons(rows...), nil
}

// questionPreview shows the question with the correct option marked and an
// action row. The preview carries the image when the question has one.
func (s *ConversationService) questionPreview(chatID int64, q *domain.Question) dto.Reply {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📝 **%s**\n\n", q.Text)
	for i, opt := range q.Options {
		marker := "◻️"
		if i == q.Correct {
			marker = "✅"
		}
		fmt.Fprintf(&sb, "%s %s\n", marker, opt)
	}
	if q.Explanation != "" {
		fmt.Fprintf(&sb, "\n🧾 _%s_", q.Explanation)
	}

	reply := dto.Reply{ChatID: chatID, Text: sb.String(), ImageRef: q.ImageRef, Markdown: true}
	return reply.WithButtons(
		[]dto.Button{
			{Label: "✏️ Edit Question", Tag: tagEditQuestion},
			{Label: "📋 Copy Question", Tag: tagCopyQuestion},
		},
		[]dto.Button{
			{Label: "🗑 Delete Question", Tag: tagDeleteQuestion},
			{Label: "⬅️ Back", Tag: tagEditQuestions},
		},
	)
}

func questionEditMenu(chatID int64) dto.Reply {
	reply := dto.Reply{ChatID: chatID, Text: "✏️ **Edit Question**", Markdown: true}
	return reply.WithButtons(
		[]dto.Button{
			{Label: "📝 Edit question text", Tag: tagEditQuestionText},
			{Label: "🖼 Change / remove image", Tag: tagEditQuestionImage},
		},
		[]dto.Button{
			{Label: "🔁 Edit choices / options", Tag: tagEditOptions},
			{Label: "✅ Change correct answer", Tag: tagEditCorrect},
		},
		[]dto.Button{
			{Label: "🧾 Edit explanation", Tag: tagEditExplanation},
			{Label: "⬅️ Back to Question Options", Tag: tagBackQuestionOptions},
		},
	)
}

func timerMenu(chatID int64) dto.Reply {
	presets := []struct {
		label   string
		seconds int
	}{
		{"15 seconds", 15},
		{"30 seconds", 30},
		{"45 seconds", 45},
		{"1 minute", 60},
		{"3 minutes", 180},
		{"5 minutes", 300},
	}
	var rows [][]dto.Button
	for _, preset := range presets {
		rows = append(rows, []dto.Button{{
			Label: preset.label,
			Tag:   fmt.Sprintf("%s%d", tagSetTimerPrefix, preset.seconds),
		}})
	}
	rows = append(rows, []dto.Button{{Label: "⬅️ Back", Tag: tagBackEditMenu}})
	return dto.NewReply(chatID, "⏱ Choose timer:").WithButtons(rows...)
}

func (s *ConversationService) shuffleMenu(ctx context.Context, st *domain.ConversationState, chatID int64) (dto.Reply, error) {
	quiz, err := s.activeQuiz(ctx, st)
	if err != nil {
		return dto.Reply{}, err
	}
	return dto.NewReply(chatID, "🔀 Shuffle settings:").WithButtons(
		[]dto.Button{{
			Label: "Shuffle Questions: " + onOff(quiz.ShuffleQuestion),
			Tag:   tagToggleQuestions,
		}},
		[]dto.Button{{
			Label: "Shuffle Options: " + onOff(quiz.ShuffleOptions),
			Tag:   tagToggleOptions,
		}},
		[]dto.Button{{Label: "⬅️ Back", Tag: tagBackEditMenu}},
	), nil
}

func (s *ConversationService) moveMenu(ctx context.Context, chatID int64) (dto.Reply, error) {
	names, err := s.folderRepo.ListFolders(ctx, s.ownerID)
	if err != nil {
		return dto.Reply{}, err
	}
	sort.Strings(names)

	var rows [][]dto.Button
	for _, name := range names {
		rows = append(rows, []dto.Button{{
			Label: "📁 " + name,
			Tag:   tagMoveQuizToPrefix + name,
		}})
	}
	rows = append(rows,
		[]dto.Button{{Label: "➕ Create new folder", Tag: tagMoveCreateFolder}},
		[]dto.Button{{Label: "⬅️ Back", Tag: tagBackAction}},
	)
	return dto.NewReply(chatID, "📁 Move quiz to folder:").WithButtons(rows...), nil
}

// copyMenu lists the owner's other quizzes as copy targets. Copying into the
// source quiz is excluded.
func (s *ConversationService) copyMenu(ctx context.Context, st *domain.ConversationState, chatID int64) (dto.Reply, error) {
	if st.ActiveQuestionID == 0 || st.ActiveQuizID == "" {
		return dto.Reply{}, domain.NewNoActiveTargetError("question")
	}
	quizzes, err := s.quizRepo.ListQuizzesByOwner(ctx, s.ownerID)
	if err != nil {
		return dto.Reply{}, err
	}
	targets := quizzes[:0]
	for _, quiz := range quizzes {
		if quiz.ID != st.ActiveQuizID {
			targets = append(targets, quiz)
		}
	}

	p := util.Paginate(len(targets), copyTargetsPage, st.CopyPage)
	st.CopyPage = p.Page

	var rows [][]dto.Button
	for _, quiz := range targets[p.Start:p.End] {
		rows = append(rows, []dto.Button{{
			Label: "📘 " + quiz.Title,
			Tag:   tagCopyToPrefix + quiz.ID,
		}})
	}

	if p.TotalPages > 1 {
		var nav []dto.Button
		if p.Page > 0 {
			nav = append(nav, dto.Button{Label: "◀ Prev", Tag: tagCopyPrev})
		}
		nav = append(nav, dto.Button{
			Label: fmt.Sprintf("%d/%d", p.Page+1, p.TotalPages),
			Tag:   tagCopyNop,
		})
		if p.Page < p.TotalPages-1 {
			nav = append(nav, dto.Button{Label: "Next ▶", Tag: tagCopyNext})
		}
		rows = append(rows, nav)
	}

	rows = append(rows, []dto.Button{{Label: "⬅️ Cancel", Tag: tagEditQuestions}})

	reply := dto.Reply{
		ChatID:   chatID,
		Text:     "📋 *Copy Question*\n\nSelect target quiz:",
		Markdown: true,
	}
	return reply.WithButtons(rows...), nil
}
