package service

// Callback tags carried by inline buttons. Parameterized tags use either a
// "PREFIX|value" or "PREFIX<value>" shape; the prefix constants end where the
// value starts.
const (
	tagGoHome       = "GO_HOME"
	tagHomeCreate   = "HOME_CREATE"
	tagHomeQuizzes  = "HOME_MY_QUIZZES"
	tagBackFolders  = "BACK_TO_FOLDERS"
	tagBackQuizzes  = "BACK_TO_QUIZZES"
	tagBackAction   = "BACK_TO_ACTION"
	tagBackEditMenu = "BACK_TO_EDIT_MENU"

	tagAddFolder          = "ADD_FOLDER"
	tagOpenFolderPrefix   = "OPEN_FOLDER|"
	tagFolderPrevPrefix   = "FOLDER_PREV|"
	tagFolderNextPrefix   = "FOLDER_NEXT|"
	tagFolderNop          = "FOLDER_NOP"
	tagRenameFolderPrefix = "RENAME_FOLDER|"
	tagDeleteFolderPrefix = "DELETE_FOLDER|"

	tagQuizPrefix = "QUIZ_"
	tagStartThis  = "START_THIS"
	tagPostQuiz   = "POST_QUIZ"
	tagEditThis   = "EDIT_THIS"
	tagMoveQuiz   = "MOVE_QUIZ"
	tagDeleteQuiz = "DELETE_QUIZ"

	tagMoveQuizToPrefix = "MOVE_QUIZ_TO|"
	tagMoveCreateFolder = "MOVE_CREATE_FOLDER"

	tagEditTitle       = "EDIT_TITLE"
	tagEditDesc        = "EDIT_DESC"
	tagEditTimer       = "EDIT_TIMER"
	tagSetTimerPrefix  = "SET_TIMER_"
	tagEditShuffle     = "EDIT_SHUFFLE"
	tagToggleQuestions = "TOGGLE_Q"
	tagToggleOptions   = "TOGGLE_A"

	tagEditQuestions       = "EDIT_QUESTIONS"
	tagQuestionPagePrev    = "QPAGE_PREV"
	tagQuestionPageNext    = "QPAGE_NEXT"
	tagQuestionPageNop     = "QPAGE_NOP"
	tagAddQuestion         = "ADD_QUESTION"
	tagQuestionPrefix      = "Q_"
	tagSkipQuestionImage   = "SKIP_Q_IMAGE"
	tagCorrectPrefix       = "CORRECT_"
	tagSkipExplanation     = "SKIP_Q_EXPLANATION"
	tagEditQuestion        = "EDIT_Q"
	tagBackQuestionOptions = "BACK_TO_Q_OPTIONS"
	tagEditQuestionText    = "EDIT_Q_TEXT"
	tagEditQuestionImage   = "EDIT_Q_IMAGE"
	tagEditImageSend       = "EDIT_Q_IMAGE_SEND"
	tagEditImageRemove     = "EDIT_Q_IMAGE_REMOVE"
	tagEditQuestionBack    = "EDIT_Q_BACK"
	tagEditOptions         = "EDIT_Q_OPTIONS"
	tagEditCorrect         = "EDIT_Q_CORRECT"
	tagEditCorrectPrefix   = "EDIT_CORRECT_"
	tagEditExplanation     = "EDIT_Q_EXPLANATION"
	tagRemoveExplanation   = "EDIT_Q_EXPL_REMOVE"
	tagDeleteQuestion      = "DELETE_QUESTION"

	tagCopyQuestion = "COPY_Q"
	tagCopyPrev     = "COPY_Q_PREV"
	tagCopyNext     = "COPY_Q_NEXT"
	tagCopyNop      = "COPY_Q_NOP"
	tagCopyToPrefix = "COPY_TO|"

	tagConfirmDelete = "CONFIRM_DELETE"
	tagCancelDelete  = "CANCEL_DELETE"

	tagPlayStart        = "PLAY_START"
	tagPlayAnswerPrefix = "PLAY_ANSWER_"
	tagLocked           = "LOCKED"
	tagBoardPrevPrefix  = "LB_PREV|"
	tagBoardNextPrefix  = "LB_NEXT|"
	tagBoardNop         = "LB_NOP"
)
