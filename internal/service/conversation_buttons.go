package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"quizbot/internal/domain"
	"quizbot/internal/dto"
)

// BoardCleaner tears down a quiz's leaderboard surface when the quiz itself
// is deleted.
type BoardCleaner interface {
	DropBoard(ctx context.Context, quizID string)
}

// SetBoardCleaner wires the leaderboard teardown hook. Optional; without it
// a deleted quiz only loses its durable rows.
func (s *ConversationService) SetBoardCleaner(c BoardCleaner) {
	s.boards = c
}

// HandleButton dispatches one authoring button tap. Play and leaderboard
// tags never reach this method, the engine routes those first.
func (s *ConversationService) HandleButton(ctx context.Context, userID int64, ev domain.Event) ([]dto.Reply, error) {
	st := s.registry.Conversation(userID)
	chatID := ev.ChatID
	tag := ev.Tag

	switch {
	case tag == tagGoHome:
		return []dto.Reply{homeReply(chatID, "🏠 Home")}, nil

	case tag == tagHomeCreate:
		s.registry.ResetConversation(userID)
		st.Step = domain.StepAwaitingTitle
		return []dto.Reply{dto.NewReply(chatID, "📝 Send quiz title:")}, nil

	case tag == tagHomeQuizzes || tag == tagBackFolders:
		menu, err := s.foldersMenu(ctx, chatID)
		if err != nil {
			return nil, err
		}
		return []dto.Reply{menu}, nil

	case tag == tagAddFolder:
		st.Step = domain.StepAddingFolder
		return []dto.Reply{dto.NewReply(chatID, "➕ Send the new folder name:")}, nil

	case strings.HasPrefix(tag, tagOpenFolderPrefix):
		folder := strings.TrimPrefix(tag, tagOpenFolderPrefix)
		if folder == "" {
			folder = domain.DefaultFolderName
		}
		st.CurrentFolder = folder
		return s.folderContentsReply(ctx, st, chatID, folder)

	case strings.HasPrefix(tag, tagFolderPrevPrefix):
		folder := strings.TrimPrefix(tag, tagFolderPrevPrefix)
		if st.FolderPages[folder] > 0 {
			st.FolderPages[folder]--
		}
		return s.folderContentsReply(ctx, st, chatID, folder)

	case strings.HasPrefix(tag, tagFolderNextPrefix):
		folder := strings.TrimPrefix(tag, tagFolderNextPrefix)
		st.FolderPages[folder]++
		return s.folderContentsReply(ctx, st, chatID, folder)

	case strings.HasPrefix(tag, tagRenameFolderPrefix):
		folder := strings.TrimPrefix(tag, tagRenameFolderPrefix)
		if domain.IsReservedFolder(folder) {
			return []dto.Reply{dto.NewReply(chatID, "❌ Default folder cannot be renamed.")}, nil
		}
		st.Step = domain.StepRenamingFolder
		st.RenameFrom = folder
		prompt := fmt.Sprintf("✏️ Send new name for folder:\n\n📁 %s", folder)
		return []dto.Reply{dto.NewReply(chatID, prompt)}, nil

	case strings.HasPrefix(tag, tagDeleteFolderPrefix):
		folder := strings.TrimPrefix(tag, tagDeleteFolderPrefix)
		if domain.IsReservedFolder(folder) {
			return []dto.Reply{dto.NewReply(chatID, "❌ Default folder cannot be deleted.")}, nil
		}
		s.registry.SetPendingDeletion(userID, &domain.PendingDeletion{
			Kind:   domain.DeleteFolder,
			Folder: folder,
		})
		text := fmt.Sprintf(
			"❗ Are you sure you want to delete the folder **%s**?\n\nAll quizzes inside will be moved to **Default Folder**.",
			folder,
		)
		reply := dto.Reply{ChatID: chatID, Text: text, Markdown: true}
		return []dto.Reply{reply.WithButtons(confirmRow())}, nil

	case strings.HasPrefix(tag, tagQuizPrefix):
		return s.openQuiz(ctx, st, chatID, strings.TrimPrefix(tag, tagQuizPrefix))

	case tag == tagBackQuizzes:
		folder := st.LastQuizFolder
		if folder == "" {
			menu, err := s.foldersMenu(ctx, chatID)
			if err != nil {
				return nil, err
			}
			return []dto.Reply{menu}, nil
		}
		return s.folderContentsReply(ctx, st, chatID, folder)

	case tag == tagBackAction:
		st.QuestionPage = 0
		return s.actionMenuReply(ctx, st, chatID)

	case tag == tagPostQuiz:
		if st.ActiveQuizID == "" {
			return []dto.Reply{dto.NewReply(chatID, "❌ No quiz selected.")}, nil
		}
		text := fmt.Sprintf(
			"👥 Add this bot to a group and make it admin.\n\nThen type this command in the group:\n\n/post_%s",
			st.ActiveQuizID,
		)
		return []dto.Reply{dto.NewReply(chatID, text)}, nil

	case tag == tagEditThis:
		st.QuestionPage = 0
		menu, err := s.editMenu(ctx, st, chatID)
		if err != nil {
			return s.targetLost(chatID, err)
		}
		return []dto.Reply{menu}, nil

	case tag == tagMoveQuiz:
		if st.ActiveQuizID == "" {
			return []dto.Reply{dto.NewReply(chatID, "❌ No quiz selected.")}, nil
		}
		menu, err := s.moveMenu(ctx, chatID)
		if err != nil {
			return nil, err
		}
		return []dto.Reply{menu}, nil

	case strings.HasPrefix(tag, tagMoveQuizToPrefix):
		return s.moveQuizTo(ctx, st, chatID, strings.TrimPrefix(tag, tagMoveQuizToPrefix))

	case tag == tagMoveCreateFolder:
		st.Step = domain.StepAddingFolderForMove
		return []dto.Reply{dto.NewReply(chatID, "➕ Send the new folder name for this quiz:")}, nil

	case tag == tagDeleteQuiz:
		if st.ActiveQuizID == "" {
			return []dto.Reply{dto.NewReply(chatID, "❌ No quiz selected.")}, nil
		}
		s.registry.SetPendingDeletion(userID, &domain.PendingDeletion{
			Kind:   domain.DeleteQuiz,
			QuizID: st.ActiveQuizID,
		})
		reply := dto.NewReply(chatID, "❗ Are you sure you want to delete this quiz?")
		return []dto.Reply{reply.WithButtons(confirmRow())}, nil

	case tag == tagEditTitle:
		st.Step = domain.StepEditingTitle
		reply := dto.NewReply(chatID, "📝 Send new title:").WithButtons(cancelEditRow())
		return []dto.Reply{reply}, nil

	case tag == tagEditDesc:
		st.Step = domain.StepEditingDescription
		reply := dto.NewReply(chatID, "🧾 Send Quiz description:").WithButtons(cancelEditRow())
		return []dto.Reply{reply}, nil

	case tag == tagEditTimer:
		return []dto.Reply{timerMenu(chatID)}, nil

	case strings.HasPrefix(tag, tagSetTimerPrefix):
		seconds, err := strconv.Atoi(strings.TrimPrefix(tag, tagSetTimerPrefix))
		if err != nil || seconds <= 0 {
			return nil, domain.NewValidationError("bad timer value: " + tag)
		}
		quiz, err := s.activeQuiz(ctx, st)
		if err != nil {
			return s.targetLost(chatID, err)
		}
		if err := s.quizRepo.UpdateTimer(ctx, quiz.ID, seconds); err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("✅ Timer set to %ds.", seconds)
		return s.withActionMenu(ctx, st, chatID, msg)

	case tag == tagEditShuffle:
		menu, err := s.shuffleMenu(ctx, st, chatID)
		if err != nil {
			return s.targetLost(chatID, err)
		}
		return []dto.Reply{menu}, nil

	case tag == tagToggleQuestions || tag == tagToggleOptions:
		quiz, err := s.activeQuiz(ctx, st)
		if err != nil {
			return s.targetLost(chatID, err)
		}
		if tag == tagToggleQuestions {
			err = s.quizRepo.ToggleShuffleQuestions(ctx, quiz.ID)
		} else {
			err = s.quizRepo.ToggleShuffleOptions(ctx, quiz.ID)
		}
		if err != nil {
			return nil, err
		}
		return s.actionMenuReply(ctx, st, chatID)

	case tag == tagBackEditMenu:
		st.Step = domain.StepIdle
		menu, err := s.editMenu(ctx, st, chatID)
		if err != nil {
			return s.targetLost(chatID, err)
		}
		return []dto.Reply{menu}, nil

	case tag == tagEditQuestions:
		return s.questionListReply(ctx, st, chatID)

	case tag == tagQuestionPagePrev:
		if st.QuestionPage > 0 {
			st.QuestionPage--
		}
		return s.questionListReply(ctx, st, chatID)

	case tag == tagQuestionPageNext:
		st.QuestionPage++
		return s.questionListReply(ctx, st, chatID)

	case tag == tagAddQuestion:
		if st.ActiveQuizID == "" {
			return []dto.Reply{dto.NewReply(chatID, "❌ No quiz selected.")}, nil
		}
		st.Step = domain.StepAwaitingQuestionText
		st.Draft = &domain.QuestionDraft{}
		return []dto.Reply{dto.NewReply(chatID, "📝 Send question text:")}, nil

	case tag == tagSkipQuestionImage:
		if st.Step != domain.StepAwaitingQuestionImage {
			return nil, nil
		}
		st.Step = domain.StepAwaitingOption
		return []dto.Reply{dto.NewReply(chatID, "➡️ Send option 1:")}, nil

	case strings.HasPrefix(tag, tagEditCorrectPrefix):
		return s.applyNewCorrect(ctx, st, chatID, strings.TrimPrefix(tag, tagEditCorrectPrefix))

	case strings.HasPrefix(tag, tagCorrectPrefix):
		if st.Step != domain.StepAwaitingCorrectChoice {
			return nil, nil
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(tag, tagCorrectPrefix))
		if err != nil || idx < 0 || idx >= domain.OptionCount {
			return nil, domain.NewValidationError("bad correct index: " + tag)
		}
		st.Draft.Correct = idx
		st.Step = domain.StepAwaitingExplanation
		reply := dto.NewReply(chatID, "🧾 Send explanation (optional):").WithButtons(
			[]dto.Button{{Label: "⏭ Skip explanation", Tag: tagSkipExplanation}},
		)
		return []dto.Reply{reply}, nil

	case tag == tagSkipExplanation:
		if st.Step != domain.StepAwaitingExplanation {
			return nil, nil
		}
		return s.saveDraft(ctx, st, chatID)

	case strings.HasPrefix(tag, tagQuestionPrefix):
		return s.openQuestion(ctx, st, chatID, strings.TrimPrefix(tag, tagQuestionPrefix))

	case tag == tagEditQuestion:
		return []dto.Reply{questionEditMenu(chatID)}, nil

	case tag == tagBackQuestionOptions || tag == tagEditQuestionBack:
		st.Step = domain.StepIdle
		return s.previewActive(ctx, st, chatID)

	case tag == tagEditQuestionText:
		st.Step = domain.StepEditingQuestionText
		return []dto.Reply{dto.NewReply(chatID, "📝 Send new question text:")}, nil

	case tag == tagEditQuestionImage:
		st.Step = domain.StepEditingQuestionImage
		reply := dto.NewReply(chatID, "🖼 Change or remove question image:").WithButtons(
			[]dto.Button{{Label: "🖼 Send new image", Tag: tagEditImageSend}},
			[]dto.Button{{Label: "🗑 Remove image", Tag: tagEditImageRemove}},
			[]dto.Button{{Label: "⬅️ Back", Tag: tagEditQuestionBack}},
		)
		return []dto.Reply{reply}, nil

	case tag == tagEditImageSend:
		st.Step = domain.StepEditingQuestionImage
		return []dto.Reply{dto.NewReply(chatID, "🖼 Please send the new image now.")}, nil

	case tag == tagEditImageRemove:
		if st.ActiveQuestionID == 0 {
			return []dto.Reply{dto.NewReply(chatID, "❌ No question selected.")}, nil
		}
		if err := s.questionRepo.UpdateImage(ctx, st.ActiveQuestionID, ""); err != nil {
			return nil, err
		}
		st.Step = domain.StepIdle
		return s.withQuestionList(ctx, st, chatID, "🗑 Image removed.")

	case tag == tagEditOptions:
		return s.startOptionsEdit(ctx, st, chatID)

	case tag == tagEditCorrect:
		return s.startCorrectEdit(ctx, st, chatID)

	case tag == tagEditExplanation:
		return s.startExplanationEdit(ctx, st, chatID)

	case tag == tagRemoveExplanation:
		if st.ActiveQuestionID == 0 {
			return []dto.Reply{dto.NewReply(chatID, "❌ No question selected.")}, nil
		}
		if err := s.questionRepo.UpdateExplanation(ctx, st.ActiveQuestionID, ""); err != nil {
			return nil, err
		}
		st.Step = domain.StepIdle
		return s.withQuestionList(ctx, st, chatID, "🗑 Explanation removed.")

	case tag == tagDeleteQuestion:
		if st.ActiveQuestionID == 0 {
			return []dto.Reply{dto.NewReply(chatID, "❌ No question selected.")}, nil
		}
		s.registry.SetPendingDeletion(userID, &domain.PendingDeletion{
			Kind:       domain.DeleteQuestion,
			QuestionID: st.ActiveQuestionID,
		})
		reply := dto.NewReply(chatID, "❗ Are you sure you want to delete this question?")
		return []dto.Reply{reply.WithButtons(confirmRow())}, nil

	case tag == tagCopyQuestion:
		st.Step = domain.StepCopyingQuestion
		return s.copyMenuReply(ctx, st, chatID)

	case tag == tagCopyPrev:
		if st.CopyPage > 0 {
			st.CopyPage--
		}
		return s.copyMenuReply(ctx, st, chatID)

	case tag == tagCopyNext:
		st.CopyPage++
		return s.copyMenuReply(ctx, st, chatID)

	case strings.HasPrefix(tag, tagCopyToPrefix):
		return s.copyQuestionTo(ctx, st, chatID, strings.TrimPrefix(tag, tagCopyToPrefix))

	case tag == tagConfirmDelete:
		return s.confirmDelete(ctx, st, userID, chatID)

	case tag == tagCancelDelete:
		s.registry.ClearPendingDeletion(userID)
		return []dto.Reply{dto.NewReply(chatID, "❌ Deletion cancelled.")}, nil

	case tag == tagFolderNop || tag == tagQuestionPageNop || tag == tagCopyNop:
		return nil, nil
	}

	return nil, nil
}

func (s *ConversationService) openQuiz(ctx context.Context, st *domain.ConversationState, chatID int64, quizID string) ([]dto.Reply, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return []dto.Reply{dto.NewReply(chatID, "❌ Quiz not found.")}, nil
	}
	st.ActiveQuizID = quiz.ID
	st.LastQuizFolder = quiz.Folder
	st.QuestionPage = 0
	return s.actionMenuReply(ctx, st, chatID)
}

func (s *ConversationService) openQuestion(ctx context.Context, st *domain.ConversationState, chatID int64, raw string) ([]dto.Reply, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError("bad question id: " + raw)
	}
	q, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return []dto.Reply{dto.NewReply(chatID, "❌ Question not found.")}, nil
	}
	st.ActiveQuestionID = q.ID
	return []dto.Reply{s.questionPreview(chatID, q)}, nil
}

func (s *ConversationService) previewActive(ctx context.Context, st *domain.ConversationState, chatID int64) ([]dto.Reply, error) {
	if st.ActiveQuestionID == 0 {
		return []dto.Reply{dto.NewReply(chatID, "❌ No question selected.")}, nil
	}
	q, err := s.questionRepo.GetQuestionByID(ctx, st.ActiveQuestionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return []dto.Reply{dto.NewReply(chatID, "❌ Question not found.")}, nil
	}
	return []dto.Reply{s.questionPreview(chatID, q)}, nil
}

func (s *ConversationService) moveQuizTo(ctx context.Context, st *domain.ConversationState, chatID int64, folder string) ([]dto.Reply, error) {
	if st.ActiveQuizID == "" {
		return []dto.Reply{dto.NewReply(chatID, "❌ No quiz selected.")}, nil
	}
	if err := s.quizRepo.MoveToFolder(ctx, st.ActiveQuizID, folder); err != nil {
		return nil, err
	}
	st.LastQuizFolder = folder
	msg := fmt.Sprintf("✅ Quiz moved to 📁 %s", folder)
	return s.withActionMenu(ctx, st, chatID, msg)
}

func (s *ConversationService) startOptionsEdit(ctx context.Context, st *domain.ConversationState, chatID int64) ([]dto.Reply, error) {
	if st.ActiveQuestionID == 0 {
		return []dto.Reply{dto.NewReply(chatID, "❌ No question selected.")}, nil
	}
	q, err := s.questionRepo.GetQuestionByID(ctx, st.ActiveQuestionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return []dto.Reply{dto.NewReply(chatID, "❌ Question not found.")}, nil
	}
	st.Step = domain.StepEditingOptions
	st.ReplacementOptions = nil

	var sb strings.Builder
	sb.WriteString("✏️ Editing options\n\nCurrent options:\n")
	digits := []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣"}
	for i, opt := range q.Options {
		fmt.Fprintf(&sb, "%s %s\n", digits[i], opt)
	}
	sb.WriteString("\n➡️ Send NEW option 1:")
	return []dto.Reply{dto.NewReply(chatID, sb.String())}, nil
}

func (s *ConversationService) startCorrectEdit(ctx context.Context, st *domain.ConversationState, chatID int64) ([]dto.Reply, error) {
	if st.ActiveQuestionID == 0 {
		return []dto.Reply{dto.NewReply(chatID, "❌ No question selected.")}, nil
	}
	q, err := s.questionRepo.GetQuestionByID(ctx, st.ActiveQuestionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return []dto.Reply{dto.NewReply(chatID, "❌ Question not found.")}, nil
	}
	reply := dto.NewReply(chatID, "✅ Choose the NEW correct answer:").
		WithButtons(optionChoiceRows(q.Options, tagEditCorrectPrefix)...)
	return []dto.Reply{reply}, nil
}

func (s *ConversationService) applyNewCorrect(ctx context.Context, st *domain.ConversationState, chatID int64, raw string) ([]dto.Reply, error) {
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 || idx >= domain.OptionCount {
		return nil, domain.NewValidationError("bad correct index: " + raw)
	}
	if st.ActiveQuestionID == 0 {
		return []dto.Reply{dto.NewReply(chatID, "❌ No question selected.")}, nil
	}
	if err := s.questionRepo.UpdateCorrect(ctx, st.ActiveQuestionID, idx); err != nil {
		return nil, err
	}
	return s.withQuestionList(ctx, st, chatID, "✅ Correct answer updated.")
}

func (s *ConversationService) startExplanationEdit(ctx context.Context, st *domain.ConversationState, chatID int64) ([]dto.Reply, error) {
	if st.ActiveQuestionID == 0 {
		return []dto.Reply{dto.NewReply(chatID, "❌ No question selected.")}, nil
	}
	q, err := s.questionRepo.GetQuestionByID(ctx, st.ActiveQuestionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return []dto.Reply{dto.NewReply(chatID, "❌ Question not found.")}, nil
	}
	current := q.Explanation
	if current == "" {
		current = "— none —"
	}
	st.Step = domain.StepEditingExplanation
	text := fmt.Sprintf("🧾 Current explanation:\n\n%s\n\n✏️ Send new explanation text:", current)
	reply := dto.NewReply(chatID, text).WithButtons(
		[]dto.Button{{Label: "⏭ Remove explanation", Tag: tagRemoveExplanation}},
	)
	return []dto.Reply{reply}, nil
}

func (s *ConversationService) copyQuestionTo(ctx context.Context, st *domain.ConversationState, chatID int64, targetQuizID string) ([]dto.Reply, error) {
	if st.ActiveQuestionID == 0 {
		return []dto.Reply{dto.NewReply(chatID, "❌ Source question not found.")}, nil
	}
	src, err := s.questionRepo.GetQuestionByID(ctx, st.ActiveQuestionID)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return []dto.Reply{dto.NewReply(chatID, "❌ Question not found.")}, nil
	}
	clone := &domain.Question{
		QuizID:      targetQuizID,
		Text:        src.Text,
		ImageRef:    src.ImageRef,
		Options:     append([]string(nil), src.Options...),
		Correct:     src.Correct,
		Explanation: src.Explanation,
	}
	if err := s.questionRepo.SaveQuestion(ctx, clone); err != nil {
		return nil, err
	}
	st.Step = domain.StepIdle
	return s.withQuestionList(ctx, st, chatID, "✅ Question copied successfully.")
}

// confirmDelete resolves the pending deletion, if any. The pending record is
// cleared first so a double tap cannot delete twice.
func (s *ConversationService) confirmDelete(ctx context.Context, st *domain.ConversationState, userID, chatID int64) ([]dto.Reply, error) {
	pd := s.registry.PendingDeletion(userID)
	if pd == nil {
		return []dto.Reply{dto.NewReply(chatID, "❌ Nothing to delete.")}, nil
	}
	s.registry.ClearPendingDeletion(userID)

	switch pd.Kind {
	case domain.DeleteQuestion:
		if err := s.questionRepo.DeleteQuestion(ctx, pd.QuestionID); err != nil {
			return nil, err
		}
		if st.ActiveQuestionID == pd.QuestionID {
			st.ActiveQuestionID = 0
		}
		return s.withQuestionList(ctx, st, chatID, "🗑 Question deleted.")

	case domain.DeleteQuiz:
		if err := s.quizRepo.DeleteQuiz(ctx, pd.QuizID); err != nil {
			return nil, err
		}
		if s.boards != nil {
			s.boards.DropBoard(ctx, pd.QuizID)
		}
		if st.ActiveQuizID == pd.QuizID {
			st.ActiveQuizID = ""
			st.ActiveQuestionID = 0
		}
		return s.withFoldersMenu(ctx, chatID, "🗑 Quiz deleted.")

	case domain.DeleteFolder:
		if err := s.folderRepo.DeleteFolder(ctx, s.ownerID, pd.Folder); err != nil {
			return nil, err
		}
		if st.CurrentFolder == pd.Folder {
			st.CurrentFolder = domain.DefaultFolderName
		}
		delete(st.FolderPages, pd.Folder)
		return s.withFoldersMenu(ctx, chatID, "🗑 Folder deleted.")
	}

	return []dto.Reply{dto.NewReply(chatID, "❌ Nothing to delete.")}, nil
}

func (s *ConversationService) actionMenuReply(ctx context.Context, st *domain.ConversationState, chatID int64) ([]dto.Reply, error) {
	menu, err := s.quizActionMenu(ctx, st, chatID)
	if err != nil {
		return s.targetLost(chatID, err)
	}
	return []dto.Reply{menu}, nil
}

func (s *ConversationService) questionListReply(ctx context.Context, st *domain.ConversationState, chatID int64) ([]dto.Reply, error) {
	list, err := s.questionList(ctx, st, chatID)
	if err != nil {
		return s.targetLost(chatID, err)
	}
	return []dto.Reply{list}, nil
}

func (s *ConversationService) folderContentsReply(ctx context.Context, st *domain.ConversationState, chatID int64, folder string) ([]dto.Reply, error) {
	menu, err := s.folderContents(ctx, st, chatID, folder)
	if err != nil {
		return nil, err
	}
	return []dto.Reply{menu}, nil
}

func (s *ConversationService) copyMenuReply(ctx context.Context, st *domain.ConversationState, chatID int64) ([]dto.Reply, error) {
	menu, err := s.copyMenu(ctx, st, chatID)
	if err != nil {
		if domain.IsCode(err, domain.CodeNoActiveTarget) {
			return []dto.Reply{dto.NewReply(chatID, "❌ No question selected.")}, nil
		}
		return nil, err
	}
	return []dto.Reply{menu}, nil
}

func confirmRow() []dto.Button {
	return []dto.Button{
		{Label: "✅ Yes, delete", Tag: tagConfirmDelete},
		{Label: "❌ Cancel", Tag: tagCancelDelete},
	}
}

func cancelEditRow() []dto.Button {
	return []dto.Button{{Label: "❌ Cancel", Tag: tagBackEditMenu}}
}
