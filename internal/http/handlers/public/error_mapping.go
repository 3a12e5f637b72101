package public

import (
	"errors"

	"github.com/devlegal/internal/service"
)

// 评论提交结果，作为查询参数回传到文章页
const (
	commentStatusPending  = "pending"
	commentStatusDisabled = "disabled"
	commentStatusInvalid  = "invalid"
)

// mappedCommentOutcome 定义评论提交错误到页面提示的映射关系。
type mappedCommentOutcome struct {
	target error
	status string
}

var commentOutcomeRules = []mappedCommentOutcome{
	{target: service.ErrCommentsDisabled, status: commentStatusDisabled},
	{target: service.ErrValidation, status: commentStatusInvalid},
	{target: service.ErrCaptchaRequired, status: commentStatusInvalid},
	{target: service.ErrCaptchaInvalid, status: commentStatusInvalid},
}

// resolveCommentOutcome 返回提示状态；无法映射的错误返回空串交由调用方处理
func resolveCommentOutcome(err error) string {
	if err == nil {
		return commentStatusPending
	}
	for _, rule := range commentOutcomeRules {
		if errors.Is(err, rule.target) {
			return rule.status
		}
	}
	return ""
}

var commentNotices = map[string]string{
	commentStatusPending:  "Your comment has been submitted and is awaiting approval.",
	commentStatusDisabled: "Comments are disabled for this post.",
	commentStatusInvalid:  "Please fill in your name, a valid email address and your comment.",
}
