package service

import (
	"context"
	"fmt"
	"strings"

	"quizbot/internal/domain"
	"quizbot/internal/dto"
	"quizbot/internal/util"
)

// clearDescription is the sentinel an owner sends to remove a quiz
// description instead of replacing it.
const clearDescription = "CLEAR"

// ConversationService drives the owner's authoring state machine: quiz
// creation, the question-add wizard, field edits, folder management, and the
// two-step delete confirmations. One wizard is active per user at a time;
// starting another replaces it along with its scratch data.
type ConversationService struct {
	registry     *SessionRegistry
	quizRepo     domain.QuizRepository
	questionRepo domain.QuestionRepository
	folderRepo   domain.FolderRepository
	boards       BoardCleaner
	ownerID      int64
}

func NewConversationService(
	registry *SessionRegistry,
	quizRepo domain.QuizRepository,
	questionRepo domain.QuestionRepository,
	folderRepo domain.FolderRepository,
	ownerID int64,
) *ConversationService {
	return &ConversationService{
		registry:     registry,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		folderRepo:   folderRepo,
		ownerID:      ownerID,
	}
}

// HandleText feeds one text message into the user's wizard. Text arriving
// while no wizard step expects it is dropped without a reply, matching how
// stray messages behave in the chat UI.
func (s *ConversationService) HandleText(ctx context.Context, userID int64, ev domain.Event) ([]dto.Reply, error) {
	st := s.registry.Conversation(userID)
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return nil, nil
	}
	chatID := ev.ChatID

	switch st.Step {
	case domain.StepAwaitingTitle:
		return s.createQuiz(ctx, st, chatID, text)

	case domain.StepEditingTitle:
		quiz, err := s.activeQuiz(ctx, st)
		if err != nil {
			return s.targetLost(chatID, err)
		}
		if err := s.quizRepo.UpdateTitle(ctx, quiz.ID, text); err != nil {
			return nil, err
		}
		st.Step = domain.StepIdle
		return s.withActionMenu(ctx, st, chatID, "✅ Title updated.")

	case domain.StepEditingDescription:
		quiz, err := s.activeQuiz(ctx, st)
		if err != nil {
			return s.targetLost(chatID, err)
		}
		desc := text
		if strings.EqualFold(text, clearDescription) {
			desc = ""
		}
		if err := s.quizRepo.UpdateDescription(ctx, quiz.ID, desc); err != nil {
			return nil, err
		}
		st.Step = domain.StepIdle
		return s.withActionMenu(ctx, st, chatID, "✅ Description updated.")

	case domain.StepAwaitingQuestionText:
		st.Draft.Text = text
		st.Step = domain.StepAwaitingQuestionImage
		reply := dto.NewReply(chatID, "🖼 Send image for this question:").WithButtons(
			[]dto.Button{{Label: "⏭ Skip image", Tag: tagSkipQuestionImage}},
		)
		return []dto.Reply{reply}, nil

	case domain.StepAwaitingOption:
		if strings.Contains(text, domain.OptionDelimiter) {
			prompt := fmt.Sprintf("❌ Option text cannot contain \"||\".\n\n➡️ Send option %d:", len(st.Draft.Options)+1)
			return []dto.Reply{dto.NewReply(chatID, prompt)}, nil
		}
		st.Draft.Options = append(st.Draft.Options, text)
		if len(st.Draft.Options) < domain.OptionCount {
			prompt := fmt.Sprintf("➡️ Send option %d:", len(st.Draft.Options)+1)
			return []dto.Reply{dto.NewReply(chatID, prompt)}, nil
		}
		st.Step = domain.StepAwaitingCorrectChoice
		reply := dto.NewReply(chatID, "✅ Choose the correct answer:").
			WithButtons(optionChoiceRows(st.Draft.Options, tagCorrectPrefix)...)
		return []dto.Reply{reply}, nil

	case domain.StepAwaitingExplanation:
		st.Draft.Explanation = text
		return s.saveDraft(ctx, st, chatID)

	case domain.StepEditingQuestionText:
		if st.ActiveQuestionID == 0 {
			return s.targetLost(chatID, domain.NewNoActiveTargetError("question"))
		}
		if err := s.questionRepo.UpdateText(ctx, st.ActiveQuestionID, text); err != nil {
			return nil, err
		}
		st.Step = domain.StepIdle
		return s.withQuestionList(ctx, st, chatID, "✅ Question text updated.")

	case domain.StepEditingOptions:
		if strings.Contains(text, domain.OptionDelimiter) {
			prompt := fmt.Sprintf("❌ Option text cannot contain \"||\".\n\n➡️ Send NEW option %d:", len(st.ReplacementOptions)+1)
			return []dto.Reply{dto.NewReply(chatID, prompt)}, nil
		}
		st.ReplacementOptions = append(st.ReplacementOptions, text)
		if len(st.ReplacementOptions) < domain.OptionCount {
			prompt := fmt.Sprintf("➡️ Send NEW option %d:", len(st.ReplacementOptions)+1)
			return []dto.Reply{dto.NewReply(chatID, prompt)}, nil
		}
		return s.applyReplacementOptions(ctx, st, chatID)

	case domain.StepEditingExplanation:
		if st.ActiveQuestionID == 0 {
			return s.targetLost(chatID, domain.NewNoActiveTargetError("question"))
		}
		if err := s.questionRepo.UpdateExplanation(ctx, st.ActiveQuestionID, text); err != nil {
			return nil, err
		}
		st.Step = domain.StepIdle
		return s.withQuestionList(ctx, st, chatID, "✅ Explanation updated.")

	case domain.StepAddingFolder:
		return s.createFolder(ctx, st, chatID, text, false)

	case domain.StepAddingFolderForMove:
		return s.createFolder(ctx, st, chatID, text, true)

	case domain.StepRenamingFolder:
		return s.renameFolder(ctx, st, chatID, text)
	}

	return nil, nil
}

// HandleImage feeds a photo into the wizard. Photos only matter during the
// question-add image step and a question image edit.
func (s *ConversationService) HandleImage(ctx context.Context, userID int64, ev domain.Event) ([]dto.Reply, error) {
	st := s.registry.Conversation(userID)
	chatID := ev.ChatID

	switch st.Step {
	case domain.StepAwaitingQuestionImage:
		st.Draft.ImageRef = ev.ImageRef
		st.Step = domain.StepAwaitingOption
		return []dto.Reply{dto.NewReply(chatID, "➡️ Send option 1:")}, nil

	case domain.StepEditingQuestionImage:
		if st.ActiveQuestionID == 0 {
			return s.targetLost(chatID, domain.NewNoActiveTargetError("question"))
		}
		if err := s.questionRepo.UpdateImage(ctx, st.ActiveQuestionID, ev.ImageRef); err != nil {
			return nil, err
		}
		st.Step = domain.StepIdle
		return s.withQuestionList(ctx, st, chatID, "✅ Image updated.")
	}

	return nil, nil
}

// InWizard reports whether text or photo input currently means something for
// this user.
func (s *ConversationService) InWizard(userID int64) bool {
	return s.registry.Conversation(userID).Step != domain.StepIdle
}

func (s *ConversationService) createQuiz(ctx context.Context, st *domain.ConversationState, chatID int64, title string) ([]dto.Reply, error) {
	folder := st.CurrentFolder
	if folder == "" {
		folder = domain.DefaultFolderName
	}
	quiz := domain.NewQuiz(util.NewULID(), s.ownerID, title, folder)
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	if err := s.quizRepo.SaveQuiz(ctx, quiz); err != nil {
		return nil, err
	}
	st.Step = domain.StepIdle
	st.ActiveQuizID = quiz.ID
	st.LastQuizFolder = folder
	return s.withActionMenu(ctx, st, chatID, "✅ Quiz created.")
}

func (s *ConversationService) saveDraft(ctx context.Context, st *domain.ConversationState, chatID int64) ([]dto.Reply, error) {
	if st.ActiveQuizID == "" || st.Draft == nil {
		return s.targetLost(chatID, domain.NewNoActiveTargetError("quiz"))
	}
	q := &domain.Question{
		QuizID:      st.ActiveQuizID,
		Text:        st.Draft.Text,
		ImageRef:    st.Draft.ImageRef,
		Options:     st.Draft.Options,
		Correct:     st.Draft.Correct,
		Explanation: st.Draft.Explanation,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.questionRepo.SaveQuestion(ctx, q); err != nil {
		return nil, err
	}
	st.Step = domain.StepIdle
	st.Draft = nil
	return s.withQuestionList(ctx, st, chatID, "✅ Question saved.")
}

// applyReplacementOptions commits a full set of four new options. The old
// correct index is meaningless against the new texts, so the owner is asked
// to pick the correct answer again before the question is playable as
// intended.
func (s *ConversationService) applyReplacementOptions(ctx context.Context, st *domain.ConversationState, chatID int64) ([]dto.Reply, error) {
	if st.ActiveQuestionID == 0 {
		return s.targetLost(chatID, domain.NewNoActiveTargetError("question"))
	}
	opts := st.ReplacementOptions
	if err := s.questionRepo.UpdateOptions(ctx, st.ActiveQuestionID, opts); err != nil {
		return nil, err
	}
	st.Step = domain.StepIdle
	st.ReplacementOptions = nil

	reply := dto.NewReply(chatID, "✅ Options updated.\n\n✅ Choose the NEW correct answer:").
		WithButtons(optionChoiceRows(opts, tagEditCorrectPrefix)...)
	return []dto.Reply{reply}, nil
}

// checkFolderName rejects the reserved Default name and duplicates,
// signaling each as a coded error.
func (s *ConversationService) checkFolderName(ctx context.Context, name string) error {
	if domain.IsReservedFolder(name) {
		return domain.NewReservedFolderError()
	}
	exists, err := s.folderRepo.Exists(ctx, s.ownerID, name)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewDuplicateNameError(name)
	}
	return nil
}

// folderRejection maps folder-name validation codes to their user replies,
// the way targetLost does for a missing active target. Other errors pass
// through.
func (s *ConversationService) folderRejection(chatID int64, err error, renaming bool) ([]dto.Reply, error) {
	switch {
	case domain.IsCode(err, domain.CodeReservedFolder):
		if renaming {
			return []dto.Reply{dto.NewReply(chatID, "❌ You cannot rename a folder to Default.")}, nil
		}
		return []dto.Reply{dto.NewReply(chatID, "❌ 'Default' folder already exists.")}, nil
	case domain.IsCode(err, domain.CodeDuplicateName):
		if renaming {
			return []dto.Reply{dto.NewReply(chatID, "❌ A folder with this name already exists.")}, nil
		}
		return []dto.Reply{dto.NewReply(chatID, "❌ Folder already exists.")}, nil
	}
	return nil, err
}

func (s *ConversationService) createFolder(ctx context.Context, st *domain.ConversationState, chatID int64, name string, moveQuiz bool) ([]dto.Reply, error) {
	if err := s.checkFolderName(ctx, name); err != nil {
		return s.folderRejection(chatID, err, false)
	}
	if err := s.folderRepo.CreateFolder(ctx, s.ownerID, name); err != nil {
		return nil, err
	}
	st.Step = domain.StepIdle

	if moveQuiz {
		if st.ActiveQuizID == "" {
			return s.targetLost(chatID, domain.NewNoActiveTargetError("quiz"))
		}
		if err := s.quizRepo.MoveToFolder(ctx, st.ActiveQuizID, name); err != nil {
			return nil, err
		}
		st.LastQuizFolder = name
		msg := fmt.Sprintf("✅ Folder '%s' created and quiz moved.", name)
		return s.withActionMenu(ctx, st, chatID, msg)
	}

	msg := fmt.Sprintf("✅ Folder '%s' created.", name)
	return s.withFoldersMenu(ctx, chatID, msg)
}

func (s *ConversationService) renameFolder(ctx context.Context, st *domain.ConversationState, chatID int64, newName string) ([]dto.Reply, error) {
	if err := s.checkFolderName(ctx, newName); err != nil {
		return s.folderRejection(chatID, err, true)
	}
	if err := s.folderRepo.RenameFolder(ctx, s.ownerID, st.RenameFrom, newName); err != nil {
		return nil, err
	}
	if st.CurrentFolder == st.RenameFrom {
		st.CurrentFolder = newName
	}
	st.Step = domain.StepIdle
	st.RenameFrom = ""

	reply := dto.Reply{
		ChatID:   chatID,
		Text:     fmt.Sprintf("✅ Folder renamed to **%s**.", newName),
		Markdown: true,
	}
	menu, err := s.foldersMenu(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return []dto.Reply{reply, menu}, nil
}

// activeQuiz loads the authoring target, normalizing a cleared target and a
// quiz deleted underneath the menu to the same handling path.
func (s *ConversationService) activeQuiz(ctx context.Context, st *domain.ConversationState) (*domain.Quiz, error) {
	if st.ActiveQuizID == "" {
		return nil, domain.NewNoActiveTargetError("quiz")
	}
	quiz, err := s.quizRepo.GetQuizByID(ctx, st.ActiveQuizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("quiz not found: " + st.ActiveQuizID)
	}
	return quiz, nil
}

// targetLost converts a missing authoring target into a user-facing reply
// instead of an error the engine would log as a failure.
func (s *ConversationService) targetLost(chatID int64, err error) ([]dto.Reply, error) {
	if domain.IsCode(err, domain.CodeNoActiveTarget) || domain.IsCode(err, domain.CodeNotFound) {
		return []dto.Reply{dto.NewReply(chatID, "❌ No quiz selected.")}, nil
	}
	return nil, err
}

func (s *ConversationService) withActionMenu(ctx context.Context, st *domain.ConversationState, chatID int64, lead string) ([]dto.Reply, error) {
	menu, err := s.quizActionMenu(ctx, st, chatID)
	if err != nil {
		return s.targetLost(chatID, err)
	}
	return []dto.Reply{dto.NewReply(chatID, lead), menu}, nil
}

func (s *ConversationService) withQuestionList(ctx context.Context, st *domain.ConversationState, chatID int64, lead string) ([]dto.Reply, error) {
	list, err := s.questionList(ctx, st, chatID)
	if err != nil {
		return s.targetLost(chatID, err)
	}
	return []dto.Reply{dto.NewReply(chatID, lead), list}, nil
}

func (s *ConversationService) withFoldersMenu(ctx context.Context, chatID int64, lead string) ([]dto.Reply, error) {
	menu, err := s.foldersMenu(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return []dto.Reply{dto.NewReply(chatID, lead), menu}, nil
}

// optionChoiceRows renders one keyboard row per option with a numbered label.
func optionChoiceRows(options []string, tagPrefix string) [][]dto.Button {
	digits := []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣"}
	rows := make([][]dto.Button, 0, len(options))
	for i, opt := range options {
		digit := fmt.Sprintf("%d", i+1)
		if i < len(digits) {
			digit = digits[i]
		}
		rows = append(rows, []dto.Button{{
			Label: fmt.Sprintf("%s %s", digit, opt),
			Tag:   fmt.Sprintf("%s%d", tagPrefix, i),
		}})
	}
	return rows
}
