package mailer

import "fmt"

// PaymentFailedBody renders the transaction-failed notification.
func PaymentFailedBody(orderID string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Transaction Failed</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #fff; border-radius: 10px; overflow: hidden;">
    <div style="background-color: #f44336; color: #fff; padding: 20px; text-align: center;">
      <h2>Transaction Failed</h2>
    </div>
    <div style="padding: 30px;">
      <p>Dear Customer,</p>
      <p>We regret to inform you that there was an issue processing your recent payment.</p>
      <p>Unfortunately, we were unable to process your payment for the order with ID: <strong>%s</strong>.</p>
      <p>Please review your payment details and ensure that the information provided is accurate.</p>
      <p>If you believe this was an error, please contact our support team for assistance.</p>
      <p>Sincerely,<br>The Payment Team</p>
    </div>
  </div>
</body>
</html>`, orderID)
}

// PaymentSuccessBody renders the payment-confirmed notification.
func PaymentSuccessBody(orderID, transactionID string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Payment Successful</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #fff; border-radius: 10px; overflow: hidden;">
    <div style="background-color: #4caf50; color: #fff; padding: 20px; text-align: center;">
      <h2>Payment Successful</h2>
    </div>
    <div style="padding: 30px;">
      <p>Dear Customer,</p>
      <p>We are delighted to inform you that your recent payment has been successfully processed.</p>
      <p>Your order with ID: <strong>%s</strong> has been confirmed.</p>
      <p>Transaction ID: <strong>%s</strong></p>
      <p>If you have any questions or concerns, please contact our support team.</p>
      <p>Best regards,<br>The Payment Team</p>
    </div>
  </div>
</body>
</html>`, orderID, transactionID)
}

// VerificationBody renders the email-verification OTP mail.
func VerificationBody(name, otp string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Email Verification</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 50px auto; padding: 20px; background-color: #fff; border-radius: 8px;">
    <h2 style="text-align: center;">Email Verification</h2>
    <p>Dear %s,</p>
    <p>Please use the following OTP to verify your email address:</p>
    <p style="padding: 10px 20px; background-color: #007bff; color: #fff; border-radius: 5px; display: inline-block;">%s</p>
    <p>If you did not request this OTP, please ignore this email.</p>
    <p>Regards,<br>Your Clothing Website Team</p>
  </div>
</body>
</html>`, name, otp)
}

// ResetPasswordBody renders the password-reset link mail.
func ResetPasswordBody(name, userID, token string) string {
	resetLink := fmt.Sprintf("http://localhost:3000/reset-password?userId=%s&token=%s", userID, token)
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Reset Password</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 50px auto; padding: 20px; background-color: #fff; border-radius: 8px;">
    <h2 style="text-align: center;">Reset Password</h2>
    <p>Dear %s,</p>
    <p>Please use the following link to reset your password:</p>
    <p style="padding: 10px 20px; background-color: #007bff; border-radius: 5px; display: inline-block;">
      <a href="%s" style="color: white; text-decoration: none;">Reset Password</a>
    </p>
    <p>If you did not request this reset link, please ignore this email.</p>
    <p>Regards,<br>Your Clothing Website Team</p>
  </div>
</body>
</html>`, name, resetLink)
}
